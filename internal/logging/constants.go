package logging

// Standardized field names for structured logging.
// Every component logs with these keys so ingestion runs can be filtered by
// document, sheet or report type.
const (
	FieldFile       = "file_path"
	FieldFileType   = "file_type"
	FieldReportType = "report_type"
	FieldSheet      = "sheet"
	FieldRunID      = "run_id"
	FieldParser     = "parser"
	FieldRow        = "row"
	FieldLine       = "line"
	FieldScore      = "score"
	FieldLayout     = "layout"
	FieldColumn     = "column"
	FieldDataType   = "data_type"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldEncoding   = "encoding"
	FieldProvider   = "provider"
	FieldModel      = "model"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
