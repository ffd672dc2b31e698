// Package api is the client-side contract with the todokeeper backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (the Client interface) covering the
//     auth endpoints (SignUp/SignIn/SignOut/GetCurrentUser) and the todo
//     CRUD endpoints.
//  2. A concrete HTTP implementation (HTTPClient) that attaches the stored
//     credential as a bearer token, normalizes the backend's inconsistent
//     error payloads, and reacts to every 401 by clearing the credential and
//     firing an onUnauthorized callback. The hosting application translates
//     that callback into navigation; the client itself never navigates.
//
// # Error Handling
//
// Failures are *Error values carrying a normalized message; match the kind
// with errors.Is against ErrValidation, ErrUnauthorized, ErrNotFound,
// ErrUnavailable, ErrInternal. Only SignOut swallows errors (best-effort).
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation. Requests are never retried: one
// call, one outcome.
package api
