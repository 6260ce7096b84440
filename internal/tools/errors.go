package tools

import "fmt"

// ToolErrorType classifies tool errors for the caller's retry decisions.
type ToolErrorType int

const (
	// ToolErrorRuntime - the tool executed but failed (file not found,
	// permission error). The model should see the error and handle it.
	ToolErrorRuntime ToolErrorType = iota

	// ToolErrorSemantic - the model misused the tool (missing parameter,
	// illegal diff structure). The caller may discard and re-prompt.
	ToolErrorSemantic
)

// ToolError is an error type that classifies errors as runtime or semantic.
type ToolError struct {
	Type    ToolErrorType
	Message string
	Details map[string]any // optional structured data for the model
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return e.Message
}

// ToJSON returns the structured form for model-visible output.
func (e *ToolError) ToJSON() map[string]any {
	result := map[string]any{
		"success": false,
		"error":   e.Message,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	return result
}

// RuntimeError creates a runtime error.
func RuntimeError(msg string) *ToolError {
	return &ToolError{Type: ToolErrorRuntime, Message: msg}
}

// RuntimeErrorf creates a formatted runtime error.
func RuntimeErrorf(format string, args ...any) *ToolError {
	return &ToolError{Type: ToolErrorRuntime, Message: fmt.Sprintf(format, args...)}
}

// SemanticError creates a semantic error.
func SemanticError(msg string) *ToolError {
	return &ToolError{Type: ToolErrorSemantic, Message: msg}
}

// SemanticErrorf creates a formatted semantic error.
func SemanticErrorf(format string, args ...any) *ToolError {
	return &ToolError{Type: ToolErrorSemantic, Message: fmt.Sprintf(format, args...)}
}

// SemanticErrorWithDetails creates a semantic error with structured details.
func SemanticErrorWithDetails(msg string, details map[string]any) *ToolError {
	return &ToolError{Type: ToolErrorSemantic, Message: msg, Details: details}
}
