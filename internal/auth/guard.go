package auth

import "slices"

// RequireIdentity fails with ErrUnauthorized when nobody is authenticated.
func RequireIdentity(identity *Identity) error {
	if identity == nil {
		return ErrUnauthorized
	}
	return nil
}

// RequireRole passes when the identity holds one of the allowed roles.
func RequireRole(identity *Identity, allowed ...Role) error {
	if identity == nil {
		return ErrUnauthorized
	}
	if !slices.Contains(allowed, identity.Role) {
		return ErrForbidden
	}
	return nil
}

// RequireOwnership passes for admins and for the owner of the resource.
func RequireOwnership(identity *Identity, ownerID int64) error {
	if identity == nil {
		return ErrUnauthorized
	}
	if identity.IsAdmin() || identity.ID == ownerID {
		return nil
	}
	return ErrForbidden
}
