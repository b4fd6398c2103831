package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped only when the envelope structure itself changes.
const envelopeVersion = 1

// envelope is the wire shape every API response is wrapped in. Success
// responses carry data; error responses carry either a plain error string or
// a code/message/details triple.
type envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps all huma responses in the versioned envelope.
// Clients rely on the exact field name "v" for the version.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 0
	}
	success := code < 400

	if apiErr, ok := v.(*APIError); ok {
		out := envelope{
			V:       envelopeVersion,
			Success: false,
			Message: apiErr.Message,
			Code:    apiErr.Code,
			Details: apiErr.Details,
		}
		if apiErr.Code == "" {
			// Simple errors collapse to a single string.
			out.Message = ""
			out.Error = apiErr.Message
		}
		return out, nil
	}

	return envelope{
		V:       envelopeVersion,
		Success: success,
		Data:    v,
	}, nil
}
