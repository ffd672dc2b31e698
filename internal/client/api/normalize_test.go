package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "top-level structured error",
			body: `{"error": {"code": "INVALID_CREDENTIALS", "message": "Invalid email or password"}}`,
			want: "Invalid email or password",
		},
		{
			name: "structured error nested under detail",
			body: `{"detail": {"error": {"code": "VALIDATION_ERROR", "message": "Passwords do not match"}}}`,
			want: "Passwords do not match",
		},
		{
			name: "string detail",
			body: `{"detail": "Todo not found"}`,
			want: "Todo not found",
		},
		{
			name: "top-level message",
			body: `{"message": "Successfully signed out"}`,
			want: "Successfully signed out",
		},
		{
			name: "detail object without message is stringified",
			body: `{"detail": {"fields": ["email"]}}`,
			want: `{"fields": ["email"]}`,
		},
		{
			name: "empty body falls back",
			body: ``,
			want: "Sign in failed",
		},
		{
			name: "non-JSON body falls back",
			body: `<html>Bad Gateway</html>`,
			want: "Sign in failed",
		},
		{
			name: "empty object falls back",
			body: `{}`,
			want: "Sign in failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeError([]byte(tt.body), "Sign in failed"))
		})
	}
}
