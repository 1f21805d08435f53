// Package jwtauth verifies bearer tokens and resolves the caller's role from
// the user directory. Tokens only prove identity; roles are never trusted
// from claims because they change when riders are approved or deactivated.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidToken is returned for missing, malformed, expired or foreign tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token body. Email identifies the caller.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type roleReader interface {
	GetByEmail(ctx context.Context, email kernel.Email) (user.User, error)
}

// Authorizer implements ports.Authorizer with HS256 tokens.
type Authorizer struct {
	secret []byte
	issuer string
	users  roleReader
	group  singleflight.Group
}

func NewAuthorizer(secret, issuer string, users roleReader) (*Authorizer, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	return &Authorizer{secret: []byte(secret), issuer: issuer, users: users}, nil
}

// Issue signs a token for email valid for ttl.
func (a *Authorizer) Issue(email string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Authorize verifies token and looks up the caller's role. Concurrent
// lookups for the same email share one directory read. An email without an
// account is a plain user.
func (a *Authorizer) Authorize(ctx context.Context, token string) (ports.Caller, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return ports.Caller{}, ErrInvalidToken
	}

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		options = append(options, jwt.WithIssuer(a.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, options...)
	if err != nil {
		return ports.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return ports.Caller{}, ErrInvalidToken
	}

	email, err := kernel.NewEmail(claims.Email)
	if err != nil {
		return ports.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	// The shared lookup outlives any single caller; each caller still stops
	// waiting when its own context ends.
	lookupCtx := context.WithoutCancel(ctx)
	lookup := a.group.DoChan(email.String(), func() (any, error) {
		account, lookupErr := a.users.GetByEmail(lookupCtx, email)
		if errors.Is(lookupErr, errs.ErrObjectNotFound) {
			return false, nil
		}
		if lookupErr != nil {
			return false, lookupErr
		}
		return account.IsAdmin(), nil
	})

	select {
	case <-ctx.Done():
		return ports.Caller{}, ctx.Err()
	case res := <-lookup:
		if res.Err != nil {
			return ports.Caller{}, res.Err
		}
		return ports.Caller{Email: email.String(), IsAdmin: res.Val.(bool)}, nil
	}
}
