// Package models holds the JSON envelopes shared by the ecsview HTTP API and its clients.
package models

import (
	"errors"

	"github.com/sierrasoftworks/humane-errors-go"
)

// ErrorResponse is the JSON form of a humane.Error.
// @Description Structured error response with contextual advice
type ErrorResponse struct {
	// Primary error message
	// example: no credentials configured for account "prod"
	Message string `json:"message"`

	// Suggestions to help resolve the error
	// example: ["add the account to the accounts section of the configuration"]
	Advice []string `json:"advice,omitempty"`

	// Error that caused this error
	Cause *ErrorResponse `json:"cause,omitempty" swaggerignore:"true"`

	// HTTP status code, not serialized
	StatusCode int `json:"-"`
}

// NewErrorResponse creates a response for message, optionally wrapping cause.
func NewErrorResponse(message string, cause error, advice ...string) *ErrorResponse {
	if cause == nil {
		return FromHumaneError(humane.New(message, advice...))
	}
	return FromHumaneError(humane.Wrap(cause, message, advice...))
}

// FromHumaneError converts a humane.Error, including its cause chain, into an ErrorResponse.
func FromHumaneError(err humane.Error) *ErrorResponse {
	if err == nil {
		return nil
	}

	resp := &ErrorResponse{Message: err.Error()}
	if advice := err.Advice(); len(advice) > 0 {
		resp.Advice = advice
	}

	cause := err.Cause()
	if cause == nil {
		return resp
	}

	var herr humane.Error
	if errors.As(cause, &herr) {
		resp.Cause = FromHumaneError(herr)
	} else {
		resp.Cause = &ErrorResponse{Message: cause.Error()}
	}

	return resp
}

// WithStatus records the HTTP status the response is sent with.
func (e *ErrorResponse) WithStatus(status int) *ErrorResponse {
	if e != nil {
		e.StatusCode = status
	}
	return e
}

// AsHumaneError converts the response back into a humane.Error.
func (e *ErrorResponse) AsHumaneError() humane.Error {
	if e == nil {
		return nil
	}

	if e.Cause == nil {
		return humane.New(e.Message, e.Advice...)
	}

	return humane.Wrap(e.Cause.AsHumaneError(), e.Message, e.Advice...)
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}
