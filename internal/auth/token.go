package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the Identity fields plus registered claims.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier turns a bearer token into an Identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// TokenIssuer signs a token for an Identity.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

// JWTService verifies and issues HS256 tokens bound to one signing key.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var (
	_ TokenVerifier = (*JWTService)(nil)
	_ TokenIssuer   = (*JWTService)(nil)
)

func NewJWTService(secret []byte, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: secret,
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Verify rejects a missing token, a bad signature or shape, and an expired
// token. Everything it returns as an error wraps ErrUnauthorized.
func (s *JWTService) Verify(tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: bad role claim %q", ErrInvalidToken, claims.Role)
	}

	return &Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// Issue signs a token for the identity, expiring after the configured TTL.
func (s *JWTService) Issue(identity Identity) (string, error) {
	return s.issue(identity, s.ttl)
}

func (s *JWTService) issue(identity Identity, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", identity.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// BearerToken extracts the token from an Authorization header value.
// It returns "" when the header is absent or not a Bearer credential.
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
