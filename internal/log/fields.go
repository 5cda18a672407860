package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldKey         = "key"
	FieldAccountID   = "account_id"
	FieldAccountName = "name"
	FieldAccountType = "type"
	FieldTxID        = "transaction_id"
	FieldAmount      = "amount"
	FieldDirection   = "direction"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStore   = "store"
	ComponentBackend = "backend"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpLoad     = "load"
	OpSave     = "save"
	OpImport   = "import"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
