package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stayhub/service-booking/internal/pkg/domain"
)

// Roles recognized across StayHub services.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated requester as carried in token claims. The
// auth service is the source of truth; this service only reads it.
type Identity struct {
	UserID uuid.UUID
	Role   string
	Name   string
	Email  string
	Phone  string
}

// IsAdmin reports whether the identity has admin privilege.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Claims is the JWT claim set issued by the auth service.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager validates (and, for tests and local tooling, issues) HS256
// access tokens shared with the auth service.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTManager creates a JWTManager with the shared signing secret.
func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken issues a signed access token for the given identity.
func (m *JWTManager) GenerateAccessToken(identity Identity) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: identity.UserID.String(),
		Role:   identity.Role,
		Name:   identity.Name,
		Email:  identity.Email,
		Phone:  identity.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateAccessToken parses and validates a token, returning the identity.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.NewUnauthorizedError("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid or expired token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid token subject")
	}

	return &Identity{
		UserID: userID,
		Role:   claims.Role,
		Name:   claims.Name,
		Email:  claims.Email,
		Phone:  claims.Phone,
	}, nil
}
