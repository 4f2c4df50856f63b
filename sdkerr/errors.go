// Package sdkerr defines the structured error type shared by the canonical
// encoder, the transaction hasher and the key component.
package sdkerr

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindEncoding marks a value outside the closed Value model reaching the
	// encoder. It indicates a programming defect in the caller.
	KindEncoding Kind = "Encoding"
	// KindParse marks malformed JSON text.
	KindParse Kind = "Parse"
	// KindValidation marks a transaction missing a required component.
	KindValidation Kind = "Validation"
	// KindKeyFormat marks key material of the wrong size or encoding.
	KindKeyFormat Kind = "KeyFormat"
	KindInternal  Kind = "Internal"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., ACC-ENC-001, ACC-VAL-102, ACC-KEY-001)
// naming the violated rule. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New returns a structured error without a cause.
func New(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// Newf is New with a formatted message.
func Newf(kind Kind, ruleID, format string, args ...any) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a structured error carrying cause. A nil cause yields the same
// result as New.
func Wrap(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return New(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
