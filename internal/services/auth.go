package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kgp-ops/wpr-portal/internal/platform/apierr"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

// Authentication is one shared admin password; there are no user accounts.
// The JWT issued on success is a session convenience so the browser does not
// hold the password, nothing more.

var (
	ErrBadPassword  = errors.New("invalid admin password")
	ErrInvalidToken = errors.New("invalid or expired session token")
)

const adminSubject = "admin"

type JWTClaims struct {
	jwt.RegisteredClaims
}

// Session is the payload handed back after a successful login.
type Session struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type AuthConfig struct {
	// Password is compared in constant time. PasswordHash, when set, takes
	// precedence and is checked with bcrypt instead.
	Password     string
	PasswordHash string
	JWTSecret    string
	SessionTTL   time.Duration
}

type AuthService interface {
	Login(ctx context.Context, password string) (*Session, error)
	ValidateToken(tokenString string) error
	SessionTTL() time.Duration
}

type authService struct {
	log *logger.Logger
	cfg AuthConfig
}

func NewAuthService(baseLog *logger.Logger, cfg AuthConfig) AuthService {
	return &authService{
		log: baseLog.With("service", "AuthService"),
		cfg: cfg,
	}
}

// Login checks the shared password and issues a session token. A wrong
// password is rejected explicitly; there is no lockout or rate limiting.
func (as *authService) Login(ctx context.Context, password string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !as.passwordMatches(password) {
		as.log.Warn("Admin login rejected")
		return nil, apierr.New(http.StatusUnauthorized, "bad_password", ErrBadPassword)
	}
	token, err := as.issueToken()
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "token_issue_failed", fmt.Errorf("issue session token: %w", err))
	}
	as.log.Info("Admin login accepted", "ttl", as.cfg.SessionTTL)
	return &Session{Token: token, ExpiresIn: int(as.cfg.SessionTTL.Seconds())}, nil
}

func (as *authService) passwordMatches(password string) bool {
	if as.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(as.cfg.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(as.cfg.Password), []byte(password)) == 1
}

func (as *authService) issueToken() (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.JWTSecret))
}

// ValidateToken accepts exactly the tokens Login issued and have not expired.
func (as *authService) ValidateToken(tokenString string) error {
	if tokenString == "" {
		return apierr.New(http.StatusUnauthorized, "missing_token", ErrInvalidToken)
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.cfg.JWTSecret), nil
	})
	if err != nil {
		return apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("%w: %v", ErrInvalidToken, err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || claims.Subject != adminSubject {
		return apierr.New(http.StatusUnauthorized, "invalid_token", ErrInvalidToken)
	}
	return nil
}

func (as *authService) SessionTTL() time.Duration {
	return as.cfg.SessionTTL
}
