package user

import (
	"context"
	"errors"
	"fmt"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/mapper"
	"boothbuzz-admin/model"
	"boothbuzz-admin/monitoring"
	"boothbuzz-admin/response"
	"boothbuzz-admin/store"
)

// Identities creates and removes logins with the identity provider.
// auth.Authenticator satisfies it.
type Identities interface {
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)
	DeleteIdentity(ctx context.Context, uid string) error
}

func NewUser(client store.Client, identities Identities) *User {
	return &User{
		table:      crud.Table[model.User]{Client: client, Name: "users", Entity: "user", Map: mapper.User},
		identities: identities,
	}
}

// User manages console accounts. Every account is a login with the identity
// provider plus a profile row linked through auth_id.
type User struct {
	table      crud.Table[model.User]
	identities Identities
}

func (u *User) List(ctx context.Context, opts crud.ListOptions) ([]model.User, error) {
	return u.table.List(ctx, opts)
}

func (u *User) Get(ctx context.Context, id string) (model.User, error) {
	return u.table.Get(ctx, id)
}

// Create registers the login first and then inserts the profile. When the
// insert fails the login is deleted again so no orphaned identity is left.
func (u *User) Create(ctx context.Context, in model.User, password string) (model.User, error) {
	uid, err := u.identities.CreateIdentity(ctx, in.Email, password, in.Name)
	if err != nil {
		logger.Warnf(ctx, "create: identity for %s rejected: %v", in.Email, err)
		return model.User{}, response.StoreRejected(err.Error())
	}
	in.AuthID = uid

	values := row(in)
	values["auth_id"] = uid
	created, err := u.table.Create(ctx, values)
	if err != nil {
		derr := u.identities.DeleteIdentity(ctx, uid)
		monitoring.ObserveCompensation("user_identity", derr)
		if derr != nil {
			logger.ErrorWithFields(ctx, map[string]interface{}{
				"auth_id":    uid,
				"email":      in.Email,
				"insert_err": err.Error(),
			}, "create: could not delete identity after failed profile insert: "+derr.Error())
		}
		return model.User{}, fmt.Errorf("create: inserting profile: %w", err)
	}
	return created, nil
}

// Update never touches auth_id; the login stays linked to the same profile.
func (u *User) Update(ctx context.Context, id string, in model.User) (model.User, error) {
	return u.table.Update(ctx, id, row(in))
}

// Delete removes the profile and then, best effort, its login.
func (u *User) Delete(ctx context.Context, id string) error {
	current, err := u.table.Get(ctx, id)
	if errors.Is(err, store.ErrNoRows) {
		return &store.NoRowsError{Entity: "user", Op: "delete"}
	}
	if err != nil {
		return err
	}
	if err := u.table.Delete(ctx, id); err != nil {
		return err
	}
	if current.AuthID == "" {
		return nil
	}
	if err := u.identities.DeleteIdentity(ctx, current.AuthID); err != nil {
		logger.Warnf(ctx, "delete: profile %s removed but identity %s remains: %v", id, current.AuthID, err)
	}
	return nil
}

func row(u model.User) store.Row {
	return store.Row{
		"name":   u.Name,
		"email":  u.Email,
		"phone":  u.Phone,
		"role":   string(u.Role),
		"city":   u.City,
		"status": string(u.Status),
	}
}
