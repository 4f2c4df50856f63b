package model

import (
	"errors"
	"fmt"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

type ErrorCode string

const (
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrInvalidValue       ErrorCode = "INVALID_VALUE"
	ErrInvalidTransaction ErrorCode = "INVALID_TRANSACTION"
	ErrInvalidKey         ErrorCode = "INVALID_KEY"
	ErrHashMismatch       ErrorCode = "HASH_MISMATCH"
	ErrInternal           ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	RuleID  string    `json:"ruleId,omitempty"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// FromError projects err onto the boundary error type. Structured library
// errors keep their RuleID. A nil err yields nil.
func FromError(err error) *CodedError {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}
	var e *sdkerr.Error
	if !errors.As(err, &e) {
		return &CodedError{Code: ErrInternal, Message: err.Error()}
	}
	code := ErrInternal
	switch e.Kind {
	case sdkerr.KindEncoding:
		code = ErrInvalidValue
	case sdkerr.KindParse:
		code = ErrInvalidRequest
	case sdkerr.KindValidation:
		code = ErrInvalidTransaction
	case sdkerr.KindKeyFormat:
		code = ErrInvalidKey
	}
	return &CodedError{Code: code, RuleID: e.RuleID, Message: err.Error()}
}
