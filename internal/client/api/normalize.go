package api

import "encoding/json"

// structuredError is the {"error": {"code", "message"}} shape the backend
// uses for most failures. It appears both at the top level and nested under
// "detail".
type structuredError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// normalizeError extracts a human-readable message from a backend error
// payload. The backend is not consistent about the shape, so the lookup is
// an ordered fallback chain:
//
//  1. a nested structured message ("error.message", directly or under
//     "detail"),
//  2. a top-level string "detail" or "message" field,
//  3. the raw "detail" object, stringified,
//  4. the caller-supplied fallback naming the failed operation.
//
// Every operation goes through this same chain.
func normalizeError(body []byte, fallback string) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	var top structuredError

	if err := json.Unmarshal(body, &top); err == nil && top.Error != nil && top.Error.Message != "" {
		return top.Error.Message
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			if s != "" {
				return s
			}
			return fallback
		}

		var nested structuredError
		if err := json.Unmarshal(payload.Detail, &nested); err == nil && nested.Error != nil && nested.Error.Message != "" {
			return nested.Error.Message
		}
		return string(payload.Detail)
	}

	if payload.Message != "" {
		return payload.Message
	}
	return fallback
}
