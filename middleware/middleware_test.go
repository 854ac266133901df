package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boothbuzz-admin/auth"
	c "boothbuzz-admin/context"
	"boothbuzz-admin/model"
	"boothbuzz-admin/session"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	u := c.SessionUser(r.Context())
	if u == nil {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(u.ID))
}

type failingLoader struct{}

func (failingLoader) LoadUser(ctx context.Context, userID string) (*model.User, error) {
	return nil, errors.New("redis: connection refused")
}

func TestCorrelationIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	h := SetCorrelationIDHeader(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = c.GetContextValue(r.Context(), c.ContextKeyCorrelationID)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get("Correlation-Id"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Correlation-Id", "abc.123")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "abc.123", seen)
}

func TestPanicHandlerRendersSomethingWrong(t *testing.T) {
	h := PanicHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry, Something went wrong")
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokens([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	sessions := session.New(session.NewMemory(), []byte("0123456789abcdef"), time.Hour)
	u := &model.User{ID: "u1", Role: model.RoleAdmin, Status: model.StatusActive}
	require.NoError(t, sessions.SaveUser(ctx, u))
	issued, err := tokens.Issue(u, "demo")
	require.NoError(t, err)

	h := Authenticate(tokens, sessions)(http.HandlerFunc(echoUser))
	call := func(header string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := call("Bearer " + issued.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer not-a-token").Code)
	assert.Equal(t, http.StatusUnauthorized, call(issued.Token).Code)

	require.NoError(t, sessions.Clear(ctx, "u1"))
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+issued.Token).Code)

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+issued.Token)
	Authenticate(tokens, failingLoader{})(http.HandlerFunc(echoUser)).ServeHTTP(w, r)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRoles(t *testing.T) {
	h := RequireRoles(model.RoleSuperAdmin, model.RoleAdmin)(http.HandlerFunc(echoUser))
	call := func(u *model.User) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
		if u != nil {
			r = r.WithContext(c.WithSessionUser(r.Context(), u))
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, call(&model.User{ID: "a", Role: model.RoleAdmin}).Code)

	w := call(&model.User{ID: "e", Role: model.RoleEventManager})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access Denied")

	assert.Equal(t, http.StatusUnauthorized, call(nil).Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Metrics)
	r.HandleFunc("/v1/vendors/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/vendors/v1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestContentTypeAndRedaction(t *testing.T) {
	h := SetContentTypeHeader(RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
	})))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}
