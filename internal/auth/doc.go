// Package auth holds the credential verifier and the access-guard predicates.
//
// A bearer token is verified into an Identity, which the HTTP layer binds to
// the request context. Guards (RequireIdentity, RequireRole, RequireOwnership)
// are pure functions over that Identity: they never touch storage and only
// ever return ErrUnauthorized or ErrForbidden.
package auth
