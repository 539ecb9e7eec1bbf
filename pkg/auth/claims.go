package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sportshub-india/sportshub-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.Role
}

// AccessTokenClaims represents the typed JWT issued to clients. The id and role
// claims mirror what the previous backend signed so existing clients keep decoding them.
type AccessTokenClaims struct {
	UserID uuid.UUID  `json:"id"`
	Role   enums.Role `json:"role"`
	jwt.RegisteredClaims
}
