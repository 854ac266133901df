package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"firebase.google.com/go"
	"firebase.google.com/go/auth"
)

var (
	ErrInvalidPassword = errors.New("invalid email or password")
	ErrSignIn          = errors.New("identity provider rejected sign in")
)

// Admin is the part of the firebase admin client the service uses.
type Admin interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

func NewAdmin(ctx context.Context, app *firebase.App) (Admin, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewAdmin: error getting Auth client: %w", err)
	}
	return client, nil
}

// CreateIdentity registers email/password with the identity provider and
// returns the new uid.
func CreateIdentity(ctx context.Context, admin Admin, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	u, err := admin.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("CreateIdentity: error creating user: %w", err)
	}
	return u.UID, nil
}

func VerifyIDToken(ctx context.Context, admin Admin, idToken string) (*auth.Token, error) {
	token, err := admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("VerifyIDToken: error verifying ID token: %w", err)
	}
	return token, nil
}

// PasswordSignIn exchanges an email and password for an ID token through the
// Identity Toolkit REST API. The admin SDK has no password sign-in.
type PasswordSignIn struct {
	URL    string
	APIKey string
	Client *http.Client
}

func NewPasswordSignIn(signInURL, apiKey string) *PasswordSignIn {
	return &PasswordSignIn{URL: signInURL, APIKey: apiKey, Client: &http.Client{Timeout: 10 * time.Second}}
}

type signInResponse struct {
	LocalID string `json:"localId"`
	IDToken string `json:"idToken"`
	Email   string `json:"email"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SignIn returns the ID token for the credentials. Wrong credentials yield
// ErrInvalidPassword; other provider failures wrap ErrSignIn.
func (p *PasswordSignIn) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", fmt.Errorf("SignIn: error encoding request: %w", err)
	}

	u := p.URL + "?key=" + url.QueryEscape(p.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("SignIn: error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("SignIn: %v: %w", err, ErrSignIn)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("SignIn: error reading response: %w", err)
	}

	var r signInResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("SignIn: unexpected response (status %d): %w", resp.StatusCode, ErrSignIn)
	}

	if resp.StatusCode != http.StatusOK || r.Error != nil {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		switch msg {
		case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
			return "", ErrInvalidPassword
		}
		return "", fmt.Errorf("SignIn: status %d %s: %w", resp.StatusCode, msg, ErrSignIn)
	}

	return r.IDToken, nil
}
