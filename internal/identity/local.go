package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionLookup resolve o dono de uma sessão ativa.
type SessionLookup interface {
	Lookup(ctx context.Context, sessionID string) (string, error)
}

// Local guarda senhas com bcrypt e emite JWT HS256 atrelados a uma
// sessão no redis.
type Local struct {
	secret   []byte
	sessions SessionLookup
	cost     int
}

func NewLocal(secret string, sessions SessionLookup) *Local {
	return &Local{
		secret:   []byte(secret),
		sessions: sessions,
		cost:     bcrypt.DefaultCost,
	}
}

func (l *Local) Name() string { return "local" }

func (l *Local) CreateAccount(_ context.Context, in AccountInput) (Account, error) {
	hash, err := l.HashPassword(in.Password)
	if err != nil {
		return Account{}, err
	}
	return Account{UID: uuid.NewString(), PasswordHash: hash}, nil
}

func (l *Local) DeleteAccount(context.Context, string) error { return nil }

func (l *Local) SetDisabled(context.Context, string, bool) error { return nil }

// RevokeTokens é no-op: as sessões locais são revogadas no redis.
func (l *Local) RevokeTokens(context.Context, string) error { return nil }

func (l *Local) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (l *Local) ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// --------- JWT ---------

func (l *Local) IssueToken(userID, role, sessionID string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"sid":  sessionID,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(l.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken valida assinatura e expiração, sem consultar a sessão.
func (l *Local) ParseToken(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return l.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	userID, ok1 := claims["sub"].(string)
	sessionID, ok2 := claims["sid"].(string)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 || userID == "" || sessionID == "" {
		return Principal{}, ErrInvalidToken
	}

	p := Principal{UserID: userID, Role: role, SessionID: sessionID}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.ExpiresAt = exp.Time
	}
	return p, nil
}

func (l *Local) Authenticate(ctx context.Context, tokenString string) (Principal, error) {
	p, err := l.ParseToken(tokenString)
	if err != nil {
		return Principal{}, err
	}

	owner, err := l.sessions.Lookup(ctx, p.SessionID)
	if err != nil || owner != p.UserID {
		return Principal{}, errors.Join(ErrSessionRevoked, err)
	}
	return p, nil
}

var (
	_ Provider              = (*Local)(nil)
	_ PasswordAuthenticator = (*Local)(nil)
	_ Authenticator         = (*Local)(nil)
)
