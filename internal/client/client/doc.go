// Package client is the HTTP client for the book review API.
//
// APIClient keeps the bearer token returned by Register and Login and sends
// it with every later call. Failures reported by the server come back as
// *APIError; transport failures match ErrUnavailable and a 401 also matches
// ErrUnauthorized, both via errors.Is.
package client
