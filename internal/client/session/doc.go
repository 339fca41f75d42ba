// Package session owns the client's authentication state.
//
// The Manager is the single source of truth for "who is the current user".
// It moves through three states:
//
//	initializing -> authenticated | unauthenticated
//	authenticated -> unauthenticated   (logout, or server-side expiry)
//	unauthenticated -> authenticated   (login/register success)
//
// Initialize resolves the persisted token against the identity endpoint
// exactly once per process; until it resolves, readers observe the loading
// state and route guards must treat the decision as pending.
//
// Token and user are always set or cleared together, so a stale identity is
// never shown under a dead token.
package session
