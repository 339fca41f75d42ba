// Package common contains shared constants used across PawPals client components.
package common

// AuthHeaderName is the HTTP header carrying the bearer credential on
// outbound requests.
const AuthHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-Id"

// TokenStorageKey is the fixed key under which the bearer token is kept
// in the durable client store. Absence of the key means unauthenticated.
const TokenStorageKey = "auth_token"
