package auth

import (
	"context"
	"errors"
	"fmt"

	"boothbuzz-admin/firebase"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"
)

// PasswordSigner exchanges credentials for an identity-provider ID token.
type PasswordSigner interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

// Firebase signs in against Firebase Authentication and loads the matching
// row from the users table.
type Firebase struct {
	admin  firebase.Admin
	signer PasswordSigner
	store  store.Client
}

func NewFirebase(admin firebase.Admin, signer PasswordSigner, client store.Client) *Firebase {
	return &Firebase{admin: admin, signer: signer, store: client}
}

func (f *Firebase) Name() string { return "firebase" }

func (f *Firebase) SignIn(ctx context.Context, creds model.Credentials) (*model.User, error) {
	idToken, err := f.signer.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, firebase.ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("SignIn: %w", err)
	}

	token, err := firebase.VerifyIDToken(ctx, f.admin, idToken)
	if err != nil {
		return nil, fmt.Errorf("SignIn: %w", err)
	}

	rows, err := f.store.Select(ctx, store.From("users").Eq("auth_id", token.UID).Limit(1))
	if err != nil {
		return nil, fmt.Errorf("SignIn: loading profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoProfile
	}

	u := mapper.User(rows[0])
	if u.Status != model.StatusActive {
		return nil, ErrInactive
	}
	return &u, nil
}

func (f *Firebase) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	return firebase.CreateIdentity(ctx, f.admin, email, password, displayName)
}

func (f *Firebase) DeleteIdentity(ctx context.Context, uid string) error {
	if err := f.admin.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("DeleteIdentity: error deleting user %s: %w", uid, err)
	}
	return nil
}
