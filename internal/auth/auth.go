// Package auth handles the operator login: credential verification against
// the configured bcrypt hash and issuance/validation of the session token
// carried in a cookie. It is deliberately thin; route protection lives in
// the web layer and the reconciliation engine never sees any of this.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for a malformed or tampered token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the session token has expired.
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the workspace session ID inside the signed token.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Manager verifies credentials and signs session tokens.
type Manager struct {
	username     string
	passwordHash string
	secret       []byte
	issuer       string
	expiry       time.Duration
}

// NewManager creates a Manager. passwordHash is a bcrypt hash of the
// operator password; secret signs session tokens.
func NewManager(username, passwordHash, secret, issuer string, expiry time.Duration) *Manager {
	return &Manager{
		username:     username,
		passwordHash: passwordHash,
		secret:       []byte(secret),
		issuer:       issuer,
		expiry:       expiry,
	}
}

// VerifyCredentials checks a username/password pair. Returns
// ErrInvalidCredentials on any mismatch without revealing which half
// failed.
func (m *Manager) VerifyCredentials(username, password string) error {
	if username != m.username {
		// Burn a comparison anyway so the timing does not reveal whether
		// the username exists.
		bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs a session token binding the login to a workspace
// session ID.
func (m *Manager) IssueToken(sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token, returning its claims.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry returns the configured session lifetime, used for the cookie
// Max-Age.
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// HashPassword produces a bcrypt hash for storing in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
