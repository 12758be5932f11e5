package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/tanmald/plate-check-mvp/domain"
)

type (
	JWTService interface {
		GenerateAccessToken(userID string, email string, ttl time.Duration) (string, error)
		ValidateToken(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (*AccessClaims, error)
	}

	// AccessClaims is the payload of a BaaS access token.
	AccessClaims struct {
		Email     string `json:"email"`
		Role      string `json:"role"`
		SessionID string `json:"session_id,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

// NewJWTService verifies tokens signed with secretKey. Without a secret the
// claims are read unverified, trusting the transport to the auth backend.
func NewJWTService(secretKey string, issuer string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

func (j *jwtService) GenerateAccessToken(userID string, email string, ttl time.Duration) (string, error) {
	if j.secretKey == "" {
		return "", domain.ErrTokenInvalid
	}
	now := time.Now()
	claims := AccessClaims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	if j.secretKey == "" {
		t_, _, err := new(jwt.Parser).ParseUnverified(token, &AccessClaims{})
		if err != nil {
			return nil, err
		}
		if err := t_.Claims.Valid(); err != nil {
			return t_, err
		}
		t_.Valid = true
		return t_, nil
	}
	return jwt.ParseWithClaims(token, &AccessClaims{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (*AccessClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenNotFound
	}
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*AccessClaims)
	if !ok || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
