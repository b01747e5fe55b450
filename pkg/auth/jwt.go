package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrValidationOnly is returned by GenerateToken when the service holds only
// a public key.
var ErrValidationOnly = errors.New("cannot sign tokens: validation-only key")

// JWTConfig holds the key material and token settings. onboardd validates
// with Secret or PublicKeyPEM; onboardctl token signs with Secret or
// PrivateKeyPEM.
type JWTConfig struct {
	// Secret is an HS256 shared key.
	Secret string
	// PrivateKeyPEM is an RS256 signing key. The public half is derived.
	PrivateKeyPEM string
	// PublicKeyPEM is an RS256 verification key.
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService issues and validates onboarding API tokens.
type JWTService struct {
	issuer     string
	expiration time.Duration

	method    jwt.SigningMethod
	signKey   any // nil when only a public key is configured
	verifyKey any
}

// NewJWTService picks RS256 when an RSA key is configured and HS256 for a
// shared secret. A private key wins over a public key.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{issuer: cfg.Issuer, expiration: cfg.Expiration}

	switch {
	case cfg.PrivateKeyPEM != "":
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
		}
		svc.method, svc.signKey, svc.verifyKey = jwt.SigningMethodRS256, key, &key.PublicKey
	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		svc.method, svc.verifyKey = jwt.SigningMethodRS256, key
	case cfg.Secret != "":
		secret := []byte(cfg.Secret)
		svc.method, svc.signKey, svc.verifyKey = jwt.SigningMethodHS256, secret, secret
	default:
		return nil, errors.New("jwt configuration requires a private key, public key or secret")
	}

	return svc, nil
}

// Method returns the signing algorithm, "RS256" or "HS256".
func (s *JWTService) Method() string {
	return s.method.Alg()
}

// GenerateToken signs a token for a reviewer or API client with the given roles.
func (s *JWTService) GenerateToken(userID uuid.UUID, roles []string) (string, error) {
	if s.signKey == nil {
		return "", ErrValidationOnly
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID: userID,
		Roles:  roles,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", s.method.Alg(), err)
	}
	return signed, nil
}

// ValidateToken parses a bearer token. Only the configured algorithm is
// accepted, and the issuer must match when one is set.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.verifyKey, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, fmt.Errorf("invalid issuer: got %q, want %q", claims.Issuer, s.issuer)
	}
	return claims, nil
}

// LoadKeyFromFile reads a PEM key named by JWT_PUBLIC_KEY_FILE or
// --jwt-private-key-file.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %q: %w", path, err)
	}
	return data, nil
}

// GenerateKeyPair returns a PEM-encoded 2048-bit RSA pair (PKCS#1 private,
// PKIX public) for local setups and tests.
func GenerateKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	privateKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privateKeyPEM, publicKeyPEM, nil
}
