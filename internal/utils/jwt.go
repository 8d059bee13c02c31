package utils

import (
	"errors"
	"strconv"
	"time"

	"wasit/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "wasit-api"

// TokenIssuer signs and verifies the back-office access and refresh tokens.
// Access and refresh tokens use different secrets and carry their type in "typ".
type TokenIssuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	now func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// GenerateTokens generates an access token and a refresh token for the given user claims.
func (ti *TokenIssuer) GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	if len(ti.AccessSecret) == 0 || len(ti.RefreshSecret) == 0 {
		return "", "", errors.New("jwt secrets not configured")
	}

	now := ti.clock()
	registered := func(ttl time.Duration) jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		}
	}

	accessClaims := models.UserClaims{
		RegisteredClaims: registered(ti.AccessTTL),
		UserID:           claims.UserID,
		Email:            claims.Email,
		Role:             claims.Role,
		Permissions:      claims.Permissions,
		TokenVersion:     claims.TokenVersion,
		TokenType:        models.TokenTypeAccess,
	}
	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(ti.AccessSecret)
	if err != nil {
		return "", "", err
	}

	// Refresh tokens carry no permissions; they are re-derived from the role on refresh.
	refreshClaims := models.UserClaims{
		RegisteredClaims: registered(ti.RefreshTTL),
		UserID:           claims.UserID,
		Email:            claims.Email,
		Role:             claims.Role,
		TokenVersion:     claims.TokenVersion,
		TokenType:        models.TokenTypeRefresh,
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(ti.RefreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseAccessToken validates an access token.
func (ti *TokenIssuer) ParseAccessToken(tokenStr string) (*models.UserClaims, error) {
	return ti.parse(tokenStr, ti.AccessSecret, models.TokenTypeAccess)
}

// ParseRefreshToken validates a refresh token.
func (ti *TokenIssuer) ParseRefreshToken(tokenStr string) (*models.UserClaims, error) {
	return ti.parse(tokenStr, ti.RefreshSecret, models.TokenTypeRefresh)
}

func (ti *TokenIssuer) parse(tokenStr string, secret []byte, typ string) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(ti.clock), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != typ {
		return nil, errors.New("unexpected token type")
	}
	return claims, nil
}

func (ti *TokenIssuer) clock() time.Time {
	if ti.now == nil {
		return time.Now()
	}
	return ti.now()
}
