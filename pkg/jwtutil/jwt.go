package jwtutil

import (
	"errors"
	"time"

	"cms-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	secret        []byte
	tokenLifetime = 24 * time.Hour
	sessionWindow = 48 * time.Hour
)

// ErrSessionExpired is returned when a token's absolute session window has
// elapsed even though its signature is still valid.
var ErrSessionExpired = errors.New("session window elapsed")

// UserClaims represents the JWT claims for an authenticated session. AuthTime
// is the epoch second of the user's first authentication and is preserved
// across refreshes; the absolute session window is measured from it, not from
// token issuance.
type UserClaims struct {
	UserID        uint   `json:"user_id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	IsActive      bool   `json:"is_active"`
	AuthTime      int64  `json:"auth_time"`
	IsExpired     bool   `json:"is_expired,omitempty"`
	CurrentSiteID *uint  `json:"current_site_id,omitempty"` // convenience only, never an authz input
	jwt.RegisteredClaims
}

// Initialize configures the signing key and lifetimes from config
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		tokenLifetime = time.Duration(cfg.ExpirationHours) * time.Hour
	}
	if cfg.SessionWindow > 0 {
		sessionWindow = cfg.SessionWindow
	}
}

// SessionWindow returns the configured absolute session lifetime
func SessionWindow() time.Duration {
	return sessionWindow
}

// GenerateToken creates a session token for a fresh sign-in. AuthTime is set
// to now.
func GenerateToken(userID uint, email, role string, isActive bool, currentSiteID *uint) (string, error) {
	now := time.Now()
	return sign(UserClaims{
		UserID:        userID,
		Email:         email,
		Role:          role,
		IsActive:      isActive,
		AuthTime:      now.Unix(),
		CurrentSiteID: currentSiteID,
	}, now)
}

// RefreshToken re-signs a token preserving its AuthTime. If the absolute
// session window has elapsed the refreshed token is marked is_expired rather
// than rejected; enforcement happens at the request gate.
func RefreshToken(claims *UserClaims) (string, error) {
	now := time.Now()
	next := *claims
	if now.Sub(time.Unix(claims.AuthTime, 0)) > sessionWindow {
		next.IsExpired = true
	}
	return sign(next, now)
}

// TokenWithSite re-signs a token with a different current site pointer. Like
// refresh, it preserves AuthTime so switching sites never stretches the
// session window.
func TokenWithSite(claims *UserClaims, siteID *uint) (string, error) {
	next := *claims
	next.CurrentSiteID = siteID
	return sign(next, time.Now())
}

func sign(claims UserClaims, now time.Time) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates the signature and parses the claims. It does not
// check the session window; callers use CheckSession for that so the refresh
// endpoint can still read window-expired tokens.
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// CheckSession returns ErrSessionExpired when the token is marked expired or
// its AuthTime is older than the absolute session window.
func CheckSession(claims *UserClaims, now time.Time) error {
	if claims.IsExpired {
		return ErrSessionExpired
	}
	if now.Sub(time.Unix(claims.AuthTime, 0)) > sessionWindow {
		return ErrSessionExpired
	}
	return nil
}
