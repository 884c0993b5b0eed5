package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"memberhub/internal/authz"
	"memberhub/internal/models"
)

const passwordCost = 12

type AuthService interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
	IssueAccessToken(p authz.Principal) (string, time.Time, error)
	ParseAccessToken(token string) (*authz.Claims, error)
	IssueVerificationToken(contact string, channel models.OTPChannel, purpose models.OTPPurpose) (string, error)
	ParseVerificationToken(token string, purpose models.OTPPurpose) (*authz.VerificationClaims, error)
}

type authService struct {
	secret          []byte
	accessTTL       time.Duration
	verificationTTL time.Duration
	now             func() time.Time
}

func NewAuthService(secret string, accessTTL, verificationTTL time.Duration) AuthService {
	return &authService{
		secret:          []byte(secret),
		accessTTL:       accessTTL,
		verificationTTL: verificationTTL,
		now:             time.Now,
	}
}

func (s *authService) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	return string(b), nil
}

func (s *authService) CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) IssueAccessToken(p authz.Principal) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.accessTTL)
	claims := &authz.Claims{
		Principal: p,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%s:%d", p.Role, p.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

func (s *authService) keyFunc(t *jwt.Token) (interface{}, error) {
	// только HMAC
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.secret, nil
}

func (s *authService) parserOptions() []jwt.ParserOption {
	return []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
}

func (s *authService) ParseAccessToken(token string) (*authz.Claims, error) {
	claims := &authz.Claims{}
	t, err := jwt.ParseWithClaims(token, claims, s.keyFunc, s.parserOptions()...)
	if err != nil || !t.Valid {
		return nil, ErrInvalidCredentials
	}
	if len(claims.Audience) > 0 {
		// verification tokens carry an audience, sessions never do
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

const verificationAudience = "contact-verification"

func (s *authService) IssueVerificationToken(contact string, channel models.OTPChannel, purpose models.OTPPurpose) (string, error) {
	now := s.now()
	claims := &authz.VerificationClaims{
		Contact: contact,
		Channel: string(channel),
		Purpose: string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{verificationAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.verificationTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign verification token: %w", err)
	}
	return signed, nil
}

func (s *authService) ParseVerificationToken(token string, purpose models.OTPPurpose) (*authz.VerificationClaims, error) {
	if token == "" {
		return nil, ErrVerificationRequired
	}
	claims := &authz.VerificationClaims{}
	opts := append(s.parserOptions(), jwt.WithAudience(verificationAudience))
	t, err := jwt.ParseWithClaims(token, claims, s.keyFunc, opts...)
	if err != nil || !t.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: verification expired, request a new code", ErrVerificationRequired)
		}
		return nil, ErrVerificationRequired
	}
	if claims.Purpose != string(purpose) {
		return nil, ErrVerificationRequired
	}
	return claims, nil
}
