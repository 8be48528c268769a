// Package auth implements the signed-token codec. Tokens are compact JWTs
// signed with the service's RSA private key; any holder of the public key
// can verify them without being able to mint new ones.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/papper-tech/auth-service/internal/common"
)

// Claims is the claim set embedded in both access and refresh tokens.
// Login and HasFaceID are carried by access tokens only; refresh tokens
// keep just the user identity and the profile flag.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Login     string `json:"login,omitempty"`
	HasFaceID bool   `json:"has_face_id,omitempty"`
}

// Codec signs and verifies token claim sets. The private key may be nil for
// verify-only deployments.
type Codec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	method     *jwt.SigningMethodRSA
}

// NewCodec builds a Codec from PEM-encoded key material. privateKeyPEM may
// be nil, in which case Issue returns an error.
func NewCodec(privateKeyPEM, publicKeyPEM []byte, algorithm string) (*Codec, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodRSA)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("public key parse error: %w", err)
	}

	c := &Codec{publicKey: publicKey, method: method}

	if privateKeyPEM != nil {
		privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("private key parse error: %w", err)
		}
		c.privateKey = privateKey
	}

	return c, nil
}

// LoadCodec reads the key pair from PEM files and builds a Codec.
func LoadCodec(privateKeyPath, publicKeyPath, algorithm string) (*Codec, error) {
	privateKeyPEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("private key read error: %w", err)
	}
	publicKeyPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("public key read error: %w", err)
	}
	return NewCodec(privateKeyPEM, publicKeyPEM, algorithm)
}

// Issue signs claims with the private key, setting the expiry to now+ttl.
func (c *Codec) Issue(claims Claims, ttl time.Duration) (string, error) {
	if c.privateKey == nil {
		return "", errors.New("codec has no private key")
	}

	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	token := jwt.NewWithClaims(c.method, claims)

	signed, err := token.SignedString(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("token signing error: %w", err)
	}
	return signed, nil
}

// VerifyAndDecode validates the signature and expiry of a compact token and
// returns its claims. Expired tokens yield common.ErrTokenExpired; any other
// validation failure yields common.ErrInvalidToken.
func (c *Codec) VerifyAndDecode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.publicKey, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
