package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hasTestData bool

func init() {
	if _, err := os.Stat("testdata"); !os.IsNotExist(err) {
		hasTestData = true
	}
}

func signInServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]interface{}
		b, _ := ioutil.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &req))
		assert.Equal(t, "asha@boothbuzz.in", req["email"])
		assert.Equal(t, true, req["returnSecureToken"])

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestPasswordSignIn(t *testing.T) {
	srv := signInServer(t, http.StatusOK, `{"localId":"uid-1","idToken":"id-token","email":"asha@boothbuzz.in"}`)
	defer srv.Close()

	token, err := NewPasswordSignIn(srv.URL, "test-key").SignIn(context.Background(), "asha@boothbuzz.in", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "id-token", token)
}

func TestPasswordSignInWrongPassword(t *testing.T) {
	srv := signInServer(t, http.StatusBadRequest, `{"error":{"code":400,"message":"INVALID_PASSWORD"}}`)
	defer srv.Close()

	_, err := NewPasswordSignIn(srv.URL, "test-key").SignIn(context.Background(), "asha@boothbuzz.in", "nope")
	assert.True(t, errors.Is(err, ErrInvalidPassword))
}

func TestPasswordSignInProviderFailure(t *testing.T) {
	srv := signInServer(t, http.StatusServiceUnavailable, `<html>unavailable</html>`)
	defer srv.Close()

	_, err := NewPasswordSignIn(srv.URL, "test-key").SignIn(context.Background(), "asha@boothbuzz.in", "secret1")
	assert.True(t, errors.Is(err, ErrSignIn))
	assert.False(t, errors.Is(err, ErrInvalidPassword))
}

type fakeAdmin struct {
	created *auth.UserToCreate
	err     error
}

func (f *fakeAdmin) CreateUser(ctx context.Context, u *auth.UserToCreate) (*auth.UserRecord, error) {
	f.created = u
	if f.err != nil {
		return nil, f.err
	}
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "uid-42"}}, nil
}

func (f *fakeAdmin) DeleteUser(ctx context.Context, uid string) error { return f.err }

func (f *fakeAdmin) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: "uid-42"}, nil
}

func TestCreateIdentity(t *testing.T) {
	admin := &fakeAdmin{}
	uid, err := CreateIdentity(context.Background(), admin, "asha@boothbuzz.in", "secret1", "Asha")
	require.NoError(t, err)
	assert.Equal(t, "uid-42", uid)
	assert.NotNil(t, admin.created)

	admin.err = errors.New("EMAIL_EXISTS")
	_, err = CreateIdentity(context.Background(), admin, "asha@boothbuzz.in", "secret1", "Asha")
	assert.Contains(t, err.Error(), "CreateIdentity: error creating user: EMAIL_EXISTS")
}

func TestVerifyIDTokenWrapsError(t *testing.T) {
	_, err := VerifyIDToken(context.Background(), &fakeAdmin{err: errors.New("token expired")}, "tok")
	assert.Contains(t, err.Error(), "VerifyIDToken: error verifying ID token:")
}

func TestVerifyIDTokenAgainstProject(t *testing.T) {
	if !hasTestData {
		t.Skipf("TestVerifyIDTokenAgainstProject: skipping test as the testdata does not exists")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile("testdata/serviceAccountKey.json"))
	require.Nil(t, err, "expected err to be nil")

	admin, err := NewAdmin(ctx, app)
	require.Nil(t, err, "expected err to be nil")

	token, err := VerifyIDToken(ctx, admin, "")
	require.Nil(t, token, "expected token to be nil")
	assert.True(t, strings.HasPrefix(err.Error(), "VerifyIDToken: error verifying ID token:"))
}
