package common

// AuthorizationHeaderName is the HTTP header that carries the session token
// on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in the Authorization header.
const BearerPrefix = "Bearer "
