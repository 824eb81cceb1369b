// Package errors classifies dashboard failures so handlers can choose a
// response status and a localized message without knowing where the failure
// came from.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind is the failure class.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindUnauthorized Kind = "unauthorized"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
	KindUpstream     Kind = "upstream"
)

// Error is a classified failure. Key names a catalog message that takes
// Message as its single argument.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

func (e Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e Error) Unwrap() error { return e.Err }

// E builds an Error without a catalog key.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds an Error whose public text comes from key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap classifies err, keeping it reachable through errors.Is and errors.As.
// A nil err stays nil.
func Wrap(kind Kind, key string, err error) error {
	if err == nil {
		return nil
	}
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: err.Error(), Err: err}
}

// KindOf returns the outermost Kind in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// LocalizationKey returns the catalog key and its argument, if err carries
// one.
func LocalizationKey(err error) (key string, arg string) {
	var appErr Error
	if err == nil || !stderrors.As(err, &appErr) {
		return "", ""
	}
	return strings.TrimSpace(appErr.Key), appErr.Message
}

// HTTPStatus maps err to a response status. Untyped errors are 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
