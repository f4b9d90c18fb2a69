package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FrigotecIdentity is the subject minted into service tokens. UID is
// the identity-provider uid, the key every profile and event row uses.
type FrigotecIdentity struct {
	UID      string
	Name     string
	Email    string
	Provider string
}

type Identity struct {
	UID        string `json:"uid"`
	UniqueName string `json:"unique_name"`
	Email      string `json:"email"`
	Provider   string `json:"provider"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

func CreateIdentityToken(identity *FrigotecIdentity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: Identity{
			UID:        identity.UID,
			UniqueName: identity.Name,
			Email:      identity.Email,
			Provider:   identity.Provider,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "frigotec",
			Audience:  []string{"*.frigotec.com.br"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	// HS256, symmetric key shared with the web services.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}
