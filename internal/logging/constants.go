package logging

// Standardized field names for structured logging, so log output stays
// consistent and filterable across the form engine, the backend client
// and the commands.
const (
	FieldEndpoint      = "endpoint"
	FieldCatalog       = "catalog"
	FieldTransactionID = "transaction_id"
	FieldTypeID        = "type_id"
	FieldCategory      = "category"
	FieldAccountID     = "account_id"
	FieldReceiptID     = "receipt_id"
	FieldFormMode      = "form_mode"
	FieldCount         = "count"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldFile          = "file_path"
)
