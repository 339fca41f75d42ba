// Package cli provides the interactive PawPals marketplace client.
//
// It wires configuration, the durable token store, the REST client, and an
// interactive REPL organized around routes: the public supplier search, the
// protected dashboard, and the admin console. Navigation goes through the
// route guard, so opening a protected route without a session redirects to
// the login prompt and, after a successful login, returns to the originally
// requested route.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
