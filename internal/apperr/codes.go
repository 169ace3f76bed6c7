// Package apperr carries domain failures with a machine-readable code. The
// code selects the localized message shown to the user; the message and
// cause are for the log.
package apperr

// Code is a machine-readable error code. Codes double as i18n message keys.
type Code string

const (
	// CodeUnknown covers unexpected failures.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors, raised by the UI before any backend call.
	CodeFieldsRequired      Code = "VALIDATION_FIELDS_REQUIRED"
	CodeDescriptionRequired Code = "VALIDATION_DESCRIPTION_REQUIRED"

	// Auth errors
	CodeInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	CodeUsernameTaken      Code = "AUTH_USERNAME_TAKEN"

	// Todo errors
	CodeTodoLoadFailed   Code = "TODO_LOAD_FAILED"
	CodeTodoAddFailed    Code = "TODO_ADD_FAILED"
	CodeTodoUpdateFailed Code = "TODO_UPDATE_FAILED"
	CodeTodoDeleteFailed Code = "TODO_DELETE_FAILED"
)
