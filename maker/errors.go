package maker

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrIO         ErrorKind = "io"
	ErrSQL        ErrorKind = "sql"
	ErrSchema     ErrorKind = "schema"
	ErrQueryParse ErrorKind = "query_parse"
	ErrSnapshot   ErrorKind = "snapshot"
	ErrPlaylist   ErrorKind = "playlist"
	ErrScan       ErrorKind = "scan"
	ErrNotFound   ErrorKind = "not_found"
	ErrConfig     ErrorKind = "config"
)

type Error struct {
	Kind    ErrorKind
	Message string
	// Path is the file or library entry the error is about, if any.
	Path  string
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Path != "" {
		base = fmt.Sprintf("%s (path=%s)", base, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func WrapPath(kind ErrorKind, path, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Path: path, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func QueryParseError(cause error) *Error {
	return &Error{Kind: ErrQueryParse, Message: "invalid query", Cause: cause}
}

func NotFoundError(what string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("not found: %s", what)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
