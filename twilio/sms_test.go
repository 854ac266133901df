package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Accounts/AC123/Messages.json", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+919812345678", r.PostForm.Get("To"))
		assert.Equal(t, "+15005550006", r.PostForm.Get("From"))
		assert.Equal(t, "You are registered", r.PostForm.Get("Body"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM42","status":"queued"}`))
	}))
	defer srv.Close()

	s := NewSender("AC123", "token", srv.URL+"/Accounts/", "+15005550006")
	sid, err := s.Send(context.Background(), "+919812345678", "You are registered")
	require.NoError(t, err)
	assert.Equal(t, "SM42", sid)
}

func TestSendReportsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number."}`))
	}))
	defer srv.Close()

	_, err := NewSender("AC123", "token", srv.URL, "+15005550006").Send(context.Background(), "123", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code: 400")
	assert.Contains(t, err.Error(), "not a valid phone number")
}

func TestNoop(t *testing.T) {
	sid, err := Noop{}.Send(context.Background(), "+919812345678", "hi")
	assert.NoError(t, err)
	assert.Empty(t, sid)
}
