// Package auth authenticates API requests with HTTP Basic credentials or
// HS256 bearer tokens.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thenoetrevino/tasktracker/internal/config"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// UserLookup is the user access the authenticator needs.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator checks credentials and issues bearer tokens.
type Authenticator struct {
	users  UserLookup
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthenticator creates an Authenticator. An empty JWTSecret is
// replaced by a random one.
func NewAuthenticator(users UserLookup, cfg config.AuthConfig) (*Authenticator, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		slog.Warn("no jwt secret configured, using a random one; tokens will not survive a restart")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Authenticator{users: users, secret: secret, ttl: ttl, now: time.Now}, nil
}

// Authenticate resolves the user behind the request's Authorization header.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*models.User, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return nil, ErrNoCredentials
	}

	if username, password, ok := r.BasicAuth(); ok {
		return a.CheckCredentials(ctx, username, password)
	}

	scheme, token, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return a.VerifyToken(ctx, strings.TrimSpace(token))
	}
	return nil, ErrNoCredentials
}

// CheckCredentials returns the user whose password matches.
func (a *Authenticator) CheckCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs a bearer token for user.
func (a *Authenticator) IssueToken(user *models.User) (string, time.Time, error) {
	now := a.now()
	expires := now.Add(a.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      expires.Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// VerifyToken checks a bearer token and loads the user it names.
func (a *Authenticator) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}

	user, err := a.users.GetUserByID(ctx, int(rawID))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
