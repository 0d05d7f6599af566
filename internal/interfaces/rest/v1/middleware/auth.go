// Package middleware holds the gin handler-chain stages: the access guards,
// rate limiting, request logging and CORS.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
)

const identityKey = "identity"

const (
	msgUnauthorized     = "Unauthorized"
	msgInsufficientRole = "Forbidden: insufficient role"
	msgPostNotFound     = "Post not found"
	msgNotPostOwner     = "You do not have permission to modify this post"
	msgInternalError    = "Internal server error"
)

// OwnerLookup resolves the owner of the resource with the given id. It
// returns domain.ErrNotFound when the resource does not exist.
type OwnerLookup func(ctx context.Context, id int64) (ownerID int64, err error)

// IdentityFrom returns the identity bound by Authenticate, or nil.
func IdentityFrom(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*auth.Identity); ok {
			return identity
		}
	}
	return auth.FromContext(c.Request.Context())
}

// Authenticate verifies the bearer token and binds the identity to both the
// gin context and the request context.
func Authenticate(verifier auth.TokenVerifier, log logger.Logger) gin.HandlerFunc {
	log = log.WithField("middleware", "authenticate")
	return func(c *gin.Context) {
		identity, err := verifier.Verify(auth.BearerToken(c.GetHeader("Authorization")))
		if err != nil {
			log.WithError(err).Debugf("Rejected %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// Authorize requires an identity to be bound. A missing identity is
// answered with 403.
func Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireIdentity(IdentityFrom(c)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgUnauthorized})
			return
		}
		c.Next()
	}
}

// AuthorizeRole requires the identity to hold one of roles.
func AuthorizeRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := auth.RequireRole(IdentityFrom(c), roles...)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, auth.ErrForbidden):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgInsufficientRole})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgUnauthorized})
		}
	}
}

// ValidateOwnership loads the owner of the post named by the :param path
// segment. A missing post is reported before ownership is evaluated; admins
// and the owner pass.
func ValidateOwnership(lookup OwnerLookup, param string, log logger.Logger) gin.HandlerFunc {
	log = log.WithField("middleware", "ownership")
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msgPostNotFound})
			return
		}

		ownerID, err := lookup(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msgPostNotFound})
				return
			}
			log.WithError(err).Errorf("Owner lookup failed for %d", id)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
			return
		}

		if err := auth.RequireOwnership(IdentityFrom(c), ownerID); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgNotPostOwner})
			return
		}
		c.Next()
	}
}
