// Package auth authenticates callers and decides what they may mutate.
//
// A request passes through the Gate: the bearer token is extracted from the
// Authorization header, verified by the TokenCodec, and its subject resolved
// to a live account. On success the caller's Identity is stored in the
// request context, where services read it with IdentityFromContext.
package auth
