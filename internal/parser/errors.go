package parser

import "fmt"

// StructureError reports a document that does not have the expected
// ServerManagerConfiguration/ProxyGroup/Proxy shape. It aborts the
// document (or, at proxy level, the one proxy).
type StructureError struct {
	Source string
	Msg    string
	Err    error
}

func (e *StructureError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Source == "" {
		return msg
	}
	return e.Source + ": " + msg
}

func (e *StructureError) Unwrap() error { return e.Err }

// PropertyError reports a single property that cannot be translated.
// Sibling properties and the enclosing filter are unaffected.
type PropertyError struct {
	Property string
	Msg      string
	Err      error
}

func (e *PropertyError) Error() string {
	msg := fmt.Sprintf("property %q: %s", e.Property, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PropertyError) Unwrap() error { return e.Err }

func structuref(format string, args ...any) *StructureError {
	return &StructureError{Msg: fmt.Sprintf(format, args...)}
}

func propertyf(name string, format string, args ...any) *PropertyError {
	return &PropertyError{Property: name, Msg: fmt.Sprintf(format, args...)}
}
