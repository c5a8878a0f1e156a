package contract

import "errors"

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrPromptMissing   = errors.New("required prompt is missing")
	ErrValidation      = errors.New("validation failed")
	ErrMalformedInput  = errors.New("malformed tool input")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrStore           = errors.New("store operation failed")
)
