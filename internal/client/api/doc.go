// Package api contains the client-side building blocks for talking to the
// PawPals marketplace backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Login/Register/Me, Logout, SearchSuppliers, SuggestSuburbs.
//  2. A concrete REST implementation (see HTTPClient) that attaches a bearer
//     credential from a TokenSource to every request, tags requests with a
//     correlation id, and maps HTTP outcomes onto the error taxonomy.
//  3. The error taxonomy itself: NetworkError, AuthenticationError,
//     ConflictError, ValidationError, ServerError. Match with errors.As.
//
// # Session expiry
//
// A 401 on any authenticated request other than the auth endpoints means the
// session died server-side. HTTPClient reports this through the handler set
// with SetUnauthorizedHandler so the session owner can clear local state,
// instead of surfacing a raw error to every call site.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package api
