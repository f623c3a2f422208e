package jwt

import (
	"errors"
	"fmt"
	"time"

	"social-system/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// JWTService issues and verifies HS256 access tokens. The user id lives in
// Subject; username and role ride along in Data.
type JWTService struct {
	secretKey   []byte
	issuer      string
	expireAfter time.Duration
}

// CustomClaims extends the registered claims with non-sensitive app fields.
type CustomClaims struct {
	Data map[string]interface{} `json:"data,omitempty"`
	jwtv5.RegisteredClaims
}

// NewJWTService creates a JWT service from config.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:   []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		expireAfter: cfg.ExpireTime,
	}
}

// GenerateToken signs an access token for userID with extra claims.
func (s *JWTService) GenerateToken(userID string, extraData map[string]interface{}) (string, error) {
	if userID == "" {
		return "", errors.New("userID is required")
	}

	now := time.Now()
	expiresAt := now.Add(s.expireAfter)

	claims := &CustomClaims{
		Data: extraData,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(expiresAt),
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}

	claims := &CustomClaims{}
	parsedToken, err := jwtv5.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwtv5.Token) (interface{}, error) {
			if token.Method != jwtv5.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secretKey, nil
		},
		jwtv5.WithIssuer(s.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
