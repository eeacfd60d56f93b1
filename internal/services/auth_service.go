package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"societyportal/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// Claims is what both session tokens carry: identity plus which of the two
// token kinds this is, so a refresh token cannot be replayed as an access one.
type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	Use    string `json:"use"`
	jwt.RegisteredClaims
}

type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) bool
	NewAccessToken(user *models.User) (string, error)
	NewRefreshToken(user *models.User) (string, error)
	ParseToken(tokenStr, use string) (*Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type authService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(secret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	return string(h), nil
}

func (s *authService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *authService) NewAccessToken(user *models.User) (string, error) {
	return s.signToken(user, TokenUseAccess, s.accessTTL)
}

func (s *authService) NewRefreshToken(user *models.User) (string, error) {
	return s.signToken(user, TokenUseRefresh, s.refreshTTL)
}

func (s *authService) signToken(user *models.User, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		Use:    use,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", use, err)
	}
	return signed, nil
}

// ParseToken validates signature, expiry and token kind. Any failure comes
// back as ErrInvalidToken so callers map it straight to 401.
func (s *authService) ParseToken(tokenStr, use string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Use != use {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *authService) RefreshTTL() time.Duration { return s.refreshTTL }
