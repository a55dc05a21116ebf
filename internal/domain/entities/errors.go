package entities

import "fmt"

// FetchError indicates a network or HTTP failure while retrieving a remote resource.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s failed", e.URL)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError indicates a malformed or unextractable document.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("parse %s failed", e.Source)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoMatchError indicates that no catalog entry satisfied the selection criteria.
type NoMatchError struct {
	Criteria SelectionCriteria
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no catalog entry matches language=%q edition=%q architecture=%q",
		e.Criteria.Language, e.Criteria.Edition, e.Criteria.Architecture)
}

// ExternalToolError indicates a non-zero exit or spawn failure of an external tool.
type ExternalToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil && e.Stderr == "" {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
