package manager

import "fmt"

// ValidationError reports a bad or missing field value. Recoverable: the
// caller surfaces the message for correction, nothing is persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnknownTypeError reports a remote type with no registered handler.
type UnknownTypeError struct {
	TypeName string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown remote type %q", e.TypeName)
}

// ConflictError reports a name collision on create. The caller owns the
// explicit overwrite-or-abort choice.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("remote %q already exists", e.Name)
}

// NotFoundError reports a missing edit/delete/probe target.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("remote %q not found", e.Name)
}

// ProbeFailedError reports an advisory connectivity-test failure during
// create or edit. The caller may retry with Force after an explicit
// save-anyway confirmation.
type ProbeFailedError struct {
	Message string
}

func (e *ProbeFailedError) Error() string { return e.Message }

// ExternalToolError reports a failed or timed-out external process, with
// the tool's stderr verbatim where available.
type ExternalToolError struct {
	Op      string
	Message string
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// ConfigIOError reports an unreadable or unwritable config file. The
// operation is aborted with no partial write.
type ConfigIOError struct {
	Err error
}

func (e *ConfigIOError) Error() string {
	return "config file error: " + e.Err.Error()
}

func (e *ConfigIOError) Unwrap() error { return e.Err }
