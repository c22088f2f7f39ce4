package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimStaffID = "staff_id"
	ClaimIsAdmin = "is_admin"
	ClaimType    = "type"

	TokenTypeAccess = "access"
)

// Service verifies staff access tokens. Tokens are normally issued by the
// identity service; GenerateAccessToken exists for tooling and tests.
type Service interface {
	GenerateAccessToken(staffID string, isAdmin bool, ttl time.Duration) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(staffID string, isAdmin bool, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(ttl).Unix()

	claims := map[string]interface{}{
		ClaimStaffID: staffID,
		ClaimIsAdmin: isAdmin,
		ClaimType:    TokenTypeAccess,
		"exp":        expiresAt,
	}

	_, token, err = j.tokenAuth.Encode(claims)
	return token, expiresAt, err
}
