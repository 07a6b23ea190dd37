package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire format version reported in every response.
// Clients key off the "v" field, so the name must never change.
const envelopeVersion = 1

// SuccessEnvelope wraps successful response bodies.
type SuccessEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorEnvelope wraps error response bodies.
type ErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every huma response body in the versioned
// envelope clients expect.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 500
	}

	if apiErr, ok := v.(*APIError); ok {
		return &ErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if code >= 400 {
		msg := status
		if e, ok := v.(error); ok {
			msg = e.Error()
		}
		return &ErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   msg,
		}, nil
	}

	return &SuccessEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
