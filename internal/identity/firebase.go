package identity

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// firebaseAuth é o subconjunto do *auth.Client usado aqui.
type firebaseAuth interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	RevokeRefreshTokens(ctx context.Context, uid string) error
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserFinder resolve o perfil a partir do UID do provedor.
type UserFinder interface {
	GetByExternalUID(ctx context.Context, uid string) (*models.User, error)
}

// Firebase delega contas e tokens ao Firebase Authentication; o app
// faz o sign-in pelo SDK e envia o ID token.
type Firebase struct {
	client firebaseAuth
	users  UserFinder
}

// InitializeFirebase cria o client do Admin SDK a partir do arquivo de credenciais.
func InitializeFirebase(ctx context.Context, credentialsPath string) (*auth.Client, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return client, nil
}

func NewFirebase(client firebaseAuth, users UserFinder) *Firebase {
	return &Firebase{client: client, users: users}
}

func (f *Firebase) Name() string { return "firebase" }

func (f *Firebase) CreateAccount(ctx context.Context, in AccountInput) (Account, error) {
	params := (&auth.UserToCreate{}).
		Email(in.Email).
		Password(in.Password).
		DisplayName(in.DisplayName)

	rec, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return Account{}, fmt.Errorf("firebase create user: %w", err)
	}
	return Account{UID: rec.UID}, nil
}

func (f *Firebase) DeleteAccount(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil && !auth.IsUserNotFound(err) {
		return fmt.Errorf("firebase delete user: %w", err)
	}
	return nil
}

func (f *Firebase) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	if _, err := f.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Disabled(disabled)); err != nil {
		return fmt.Errorf("firebase update user: %w", err)
	}
	return nil
}

func (f *Firebase) RevokeTokens(ctx context.Context, uid string) error {
	if err := f.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("firebase revoke tokens: %w", err)
	}
	return nil
}

func (f *Firebase) Authenticate(ctx context.Context, idToken string) (Principal, error) {
	tok, err := f.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenRevoked(err) {
			return Principal{}, ErrSessionRevoked
		}
		return Principal{}, ErrInvalidToken
	}

	user, err := f.users.GetByExternalUID(ctx, tok.UID)
	if err != nil || user == nil {
		return Principal{}, ErrUnknownIdentity
	}
	if !user.Active {
		return Principal{}, ErrSessionRevoked
	}

	p := Principal{UserID: user.ID, Role: user.Role}
	if tok.Expires > 0 {
		p.ExpiresAt = unixTime(tok.Expires)
	}
	return p, nil
}

// IsEmailTaken informa se err é o "email already exists" do Firebase.
// O SDK só reconhece o próprio tipo de erro, então a cadeia é desembrulhada.
func IsEmailTaken(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if auth.IsEmailAlreadyExists(err) {
			return true
		}
	}
	return false
}

var (
	_ Provider      = (*Firebase)(nil)
	_ Authenticator = (*Firebase)(nil)
)
