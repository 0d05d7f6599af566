package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testJWT = auth.NewJWTService([]byte("test-secret"), time.Hour, "test")

func bearer(t *testing.T, identity auth.Identity) string {
	t.Helper()
	token, err := testJWT.Issue(identity)
	require.NoError(t, err)
	return "Bearer " + token
}

// serve builds a one-route engine whose final handler echoes the bound
// identity, runs one request and returns the recorder.
func serve(t *testing.T, method, path, route, authHeader string, chain ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	handlers := append(chain, func(c *gin.Context) {
		identity := IdentityFrom(c)
		fromCtx := auth.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"identity": identity, "bound_to_request": fromCtx != nil})
	})
	router.Handle(method, route, handlers...)

	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	log := logger.NewNop()
	user := auth.Identity{ID: 1, Email: "a@example.com", Role: auth.RoleUser}

	t.Run("valid token binds identity", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/x", "/x", bearer(t, user), Authenticate(testJWT, log))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"identity":{"id":1,"email":"a@example.com","role":"USER"},"bound_to_request":true}`,
			rec.Body.String())
	})

	for name, header := range map[string]string{
		"missing":      "",
		"malformed":    "Bearer not-a-jwt",
		"wrong scheme": "Basic abc",
		"wrong secret": func() string {
			token, _ := auth.NewJWTService([]byte("other"), time.Hour, "test").Issue(user)
			return "Bearer " + token
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, http.MethodGet, "/x", "/x", header, Authenticate(testJWT, log))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestAuthorize_WithoutIdentityIs403(t *testing.T) {
	rec := serve(t, http.MethodGet, "/x", "/x", "", Authorize())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestAuthorize_WithIdentity(t *testing.T) {
	header := bearer(t, auth.Identity{ID: 1, Role: auth.RoleUser})
	rec := serve(t, http.MethodGet, "/x", "/x", header, Authenticate(testJWT, logger.NewNop()), Authorize())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizeRole(t *testing.T) {
	log := logger.NewNop()
	admin := bearer(t, auth.Identity{ID: 1, Role: auth.RoleAdmin})
	user := bearer(t, auth.Identity{ID: 2, Role: auth.RoleUser})

	rec := serve(t, http.MethodGet, "/x", "/x", admin, Authenticate(testJWT, log), AuthorizeRole(auth.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, http.MethodGet, "/x", "/x", user, Authenticate(testJWT, log), AuthorizeRole(auth.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Forbidden: insufficient role"}`, rec.Body.String())

	rec = serve(t, http.MethodGet, "/x", "/x", "", AuthorizeRole(auth.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestChainStopsAtFirstFailure(t *testing.T) {
	called := false
	lookup := func(context.Context, int64) (int64, error) {
		called = true
		return 1, nil
	}

	rec := serve(t, http.MethodDelete, "/posts/1", "/posts/:id", "",
		Authenticate(testJWT, logger.NewNop()), Authorize(), ValidateOwnership(lookup, "id", logger.NewNop()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "later stages do not run")
}

func TestValidateOwnership(t *testing.T) {
	log := logger.NewNop()
	owners := map[int64]int64{10: 2}
	lookup := func(_ context.Context, id int64) (int64, error) {
		if id == 99 {
			return 0, errors.New("db down")
		}
		owner, ok := owners[id]
		if !ok {
			return 0, domain.ErrNotFound
		}
		return owner, nil
	}

	tests := []struct {
		name     string
		identity auth.Identity
		path     string
		code     int
		body     string
	}{
		{"owner passes", auth.Identity{ID: 2, Role: auth.RoleUser}, "/posts/10", http.StatusOK, ""},
		{"admin passes", auth.Identity{ID: 7, Role: auth.RoleAdmin}, "/posts/10", http.StatusOK, ""},
		{"other user is forbidden", auth.Identity{ID: 1, Role: auth.RoleUser}, "/posts/10", http.StatusForbidden,
			`{"error":"You do not have permission to modify this post"}`},
		{"missing post before ownership", auth.Identity{ID: 1, Role: auth.RoleUser}, "/posts/11", http.StatusNotFound,
			`{"error":"Post not found"}`},
		{"unparseable id", auth.Identity{ID: 2, Role: auth.RoleUser}, "/posts/abc", http.StatusNotFound,
			`{"error":"Post not found"}`},
		{"lookup failure", auth.Identity{ID: 2, Role: auth.RoleUser}, "/posts/99", http.StatusInternalServerError,
			`{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPut, tt.path, "/posts/:id", bearer(t, tt.identity),
				Authenticate(testJWT, log), Authorize(), ValidateOwnership(lookup, "id", log))
			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestValidateOwnership_WithoutIdentity(t *testing.T) {
	lookup := func(context.Context, int64) (int64, error) { return 1, nil }
	rec := serve(t, http.MethodPut, "/posts/1", "/posts/:id", "", ValidateOwnership(lookup, "id", logger.NewNop()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
