// Package cli provides the interactive book review command-line client.
//
// App wires configuration and the HTTP API client into a read-eval-print
// loop. Users register or log in first; the session token is kept in memory
// for the lifetime of the process and dropped on logout or when the server
// answers 401.
//
// Commands that take an id accept it as an argument or prompt for it:
//
//	books [page=N] [limit=N] [genre=...] [author=...]
//	book <id>
//	review <book id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
