package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldBackend   = "backend"
	FieldExpenseID = "expense_id"
	FieldTitle     = "title"
	FieldAmount    = "amount_cents"
	FieldCategory  = "category"
	FieldDate      = "date"
	FieldCount     = "count"
	FieldKey       = "key"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStore   = "store"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentCache   = "cache"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpAdd        = "add"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpLoad       = "load"
	OpPersist    = "persist"
	OpSetFilters = "set_filters"
	OpCategory   = "add_category"
)
