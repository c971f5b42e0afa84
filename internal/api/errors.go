package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RejectionError is an HTTP response the service answered with an error
// status. Detail carries the server-supplied message verbatim.
type RejectionError struct {
	Status int
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// UnreachableError means no response was received at all. Service names
// the backend that was targeted.
type UnreachableError struct {
	Service string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Service, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// service names used in connectivity errors
const (
	ServiceBackend   = "VoiceAI backend"
	ServiceSynthesis = "synthesis service"
)

// rejectionFromBody builds a RejectionError from an error response body.
// The general backend answers {"detail": "..."}; other services may use
// an {error, message} envelope.
func rejectionFromBody(status int, body []byte) *RejectionError {
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &RejectionError{Status: status, Detail: detail.Detail}
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return &RejectionError{Status: status, Detail: envelope.Message}
	}

	return &RejectionError{Status: status, Detail: string(body)}
}

// AsRejection reports whether err is a server rejection.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	ok := errors.As(err, &rej)
	return rej, ok
}

// AsUnreachable reports whether err is a connectivity failure.
func AsUnreachable(err error) (*UnreachableError, bool) {
	var unr *UnreachableError
	ok := errors.As(err, &unr)
	return unr, ok
}
