package model

import "fmt"

// EditError represents a rejected edit (unknown field, bad index, invalid
// currency). The invoice is left untouched when one is returned.
type EditError struct {
	Field   string
	Message string
	Cause   error
}

func (e *EditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("edit %s: %s (%v)", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("edit %s: %s", e.Field, e.Message)
}

func (e *EditError) Unwrap() error {
	return e.Cause
}

// NewEditError creates a new edit error
func NewEditError(field, message string, cause error) *EditError {
	return &EditError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ExportError represents a failed document generation. Export is
// all-or-nothing: when one is returned, no artifact was produced.
type ExportError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed [%s]: %s", e.Stage, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new export error
func NewExportError(stage, message string, cause error) *ExportError {
	return &ExportError{
		Stage:   stage,
		Message: message,
		Cause:   cause,
	}
}
