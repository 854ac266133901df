package user

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"boothbuzz-admin/crud"
	"boothbuzz-admin/model"
	"boothbuzz-admin/response"
	"boothbuzz-admin/store"
	"boothbuzz-admin/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentities struct {
	created   []string
	deleted   []string
	createErr error
	deleteErr error
}

func (f *fakeIdentities) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	uid := "uid-" + email
	f.created = append(f.created, uid)
	return uid, nil
}

func (f *fakeIdentities) DeleteIdentity(ctx context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return f.deleteErr
}

func priya() model.User {
	return model.User{Name: "Priya", Email: "priya@boothbuzz.in", Role: model.RoleCityManager, City: "Pune", Status: model.StatusActive}
}

func TestCreateLinksIdentityToProfile(t *testing.T) {
	ids := &fakeIdentities{}
	svc := NewUser(storetest.NewMemory(), ids)

	got, err := svc.Create(context.Background(), priya(), "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-priya@boothbuzz.in", got.AuthID)
	assert.Equal(t, model.RoleCityManager, got.Role)
	assert.Empty(t, ids.deleted)
}

func TestCreateIdentityRejected(t *testing.T) {
	m := storetest.NewMemory()
	svc := NewUser(m, &fakeIdentities{createErr: errors.New("EMAIL_EXISTS")})

	_, err := svc.Create(context.Background(), priya(), "secret1")
	var er response.ErrorResponse
	require.True(t, errors.As(err, &er))
	assert.Equal(t, http.StatusBadRequest, er.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", er.Message)
	assert.Equal(t, 0, m.Calls("insert"))
}

func TestProfileFailureDeletesIdentity(t *testing.T) {
	m := storetest.NewMemory()
	m.FailNext("insert", errors.New("Duplicate entry 'priya@boothbuzz.in' for key 'email'"))
	ids := &fakeIdentities{}
	svc := NewUser(m, ids)

	_, err := svc.Create(context.Background(), priya(), "secret1")
	var se *store.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, ids.created, ids.deleted)
}

func TestProfileFailureWithFailedCompensation(t *testing.T) {
	m := storetest.NewMemory()
	m.FailNext("insert", errors.New("connection reset"))
	ids := &fakeIdentities{deleteErr: errors.New("USER_NOT_FOUND")}

	_, err := NewUser(m, ids).Create(context.Background(), priya(), "secret1")
	assert.Contains(t, err.Error(), "connection reset")
	assert.Len(t, ids.deleted, 1)
}

func TestUpdateKeepsAuthID(t *testing.T) {
	ctx := context.Background()
	m := storetest.NewMemory()
	m.Seed("users", store.Row{"id": "u1", "auth_id": "uid-1", "name": "Priya", "role": "admin", "status": "active"})
	svc := NewUser(m, &fakeIdentities{})

	in := priya()
	in.AuthID = "someone-else"
	got, err := svc.Update(ctx, "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.AuthID)
	assert.Equal(t, "Pune", got.City)

	list, err := svc.List(ctx, crud.ListOptions{Filters: []store.Filter{store.Eq("city", "Pune")}})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteRemovesIdentity(t *testing.T) {
	ctx := context.Background()
	m := storetest.NewMemory()
	m.Seed("users", store.Row{"id": "u1", "auth_id": "uid-1", "name": "Priya"})
	ids := &fakeIdentities{deleteErr: errors.New("already gone")}
	svc := NewUser(m, ids)

	require.NoError(t, svc.Delete(ctx, "u1"))
	assert.Equal(t, []string{"uid-1"}, ids.deleted)
	assert.Empty(t, m.Rows("users"))

	err := svc.Delete(ctx, "u1")
	assert.Equal(t, "No user was deleted", err.Error())
}
