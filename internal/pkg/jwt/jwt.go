package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	streamTokenType = "stream"
	streamTokenTTL  = 5 * time.Minute
)

var (
	ErrMissingClaims      = errors.New("token is missing required claims")
	ErrInvalidStreamToken = errors.New("invalid or expired stream token")
	ErrAdminRequired      = errors.New("admin privilege required")
)

// Identity is the caller as asserted by the identity provider.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type Service interface {
	// GenerateAccessToken mints a token shaped like the identity provider's.
	// Used by attendancectl and tests; production tokens come from the provider.
	GenerateAccessToken(userID string, role string, ttl time.Duration) (token string, expiresAt int64, err error)
	GenerateStreamToken(id Identity) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (Identity, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, role string, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(ttl).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  userID,
		"role": role,
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateStreamToken generates a short-lived token for SSE connections,
// which cannot carry an Authorization header from a browser EventSource.
func (j *JWTService) GenerateStreamToken(id Identity) (token string, expiresIn int, err error) {
	expiresIn = int(streamTokenTTL.Seconds())
	expiresAt := time.Now().Add(streamTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  id.UserID,
		"role": id.Role,
		"type": streamTokenType,
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateStreamToken validates a stream token and returns who it was issued to
func (j *JWTService) ValidateStreamToken(tokenString string) (Identity, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidStreamToken, err)
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != streamTokenType {
		return Identity{}, ErrInvalidStreamToken
	}

	return identityFromToken(token)
}

// IdentityFromContext reads the identity verified by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, err
	}
	if token == nil {
		return Identity{}, ErrMissingClaims
	}
	return identityFromToken(token)
}

func identityFromToken(token jwt.Token) (Identity, error) {
	userID := token.Subject()
	if userID == "" {
		return Identity{}, ErrMissingClaims
	}

	roleVal, ok := token.Get("role")
	if !ok {
		return Identity{}, ErrMissingClaims
	}
	role, ok := roleVal.(string)
	if !ok || (role != RoleAdmin && role != RoleEmployee) {
		return Identity{}, ErrMissingClaims
	}

	return Identity{UserID: userID, Role: role}, nil
}
