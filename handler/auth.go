package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"boothbuzz-admin/auth"
	c "boothbuzz-admin/context"
	"boothbuzz-admin/factory"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/model"
	"boothbuzz-admin/nav"
	"boothbuzz-admin/response"
)

// Session is what the console loads once after sign-in.
type Session struct {
	User *model.User `json:"user"`
	Menu []nav.Entry `json:"menu"`
}

type LoginResult struct {
	Auth *model.Auth `json:"auth"`
	User *model.User `json:"user"`
	Menu []nav.Entry `json:"menu"`
}

type Hints struct {
	EventCreated bool `json:"eventCreated"`
}

func Login(f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var creds model.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("login: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}
		if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
			response.InvalidData("email and password are required").Send(ctx, w)
			return
		}

		ip, err := getIP(r)
		if err != nil {
			logger.Infof(ctx, "login: unable to resolve ip address, continuing: %+v", err)
		}

		authn := f.Authenticator(ctx)
		u, err := authn.SignIn(ctx, creds)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			logger.Warnf(ctx, "login: rejected %s from %s", creds.Email, ip)
			response.CanNotLogin().Send(ctx, w)
			return
		case errors.Is(err, auth.ErrNoProfile), errors.Is(err, auth.ErrInactive):
			response.Forbidden(capitalize(err.Error())).Send(ctx, w)
			return
		case err != nil:
			response.FromError(ctx, err).Send(ctx, w)
			return
		}

		issued, err := f.Tokens().Issue(u, authn.Name())
		if err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		if err := f.Sessions(ctx).SaveUser(ctx, u); err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}

		logger.Infof(ctx, "login: %s signed in as %s from %s", u.ID, u.Role, ip)
		response.SuccessResponse{
			Data:     LoginResult{Auth: issued, User: u, Menu: nav.Menu(u.Role)},
			Redirect: "/dashboard",
		}.Send(w)
	}
}

func Logout(f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u := c.SessionUser(ctx)
		if err := f.Sessions(ctx).Clear(ctx, u.ID); err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		response.SuccessResponse{Message: "Signed out", Redirect: "/login"}.Send(w)
	}
}

func CurrentSession(w http.ResponseWriter, r *http.Request) {
	u := c.SessionUser(r.Context())
	response.SuccessResponse{Data: Session{User: u, Menu: nav.Menu(u.Role)}}.Send(w)
}

// SessionHints returns and clears one-shot hints such as a just-created event.
func SessionHints(f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u := c.SessionUser(ctx)
		created, err := f.Sessions(ctx).TakeEventCreated(ctx, u.ID)
		if err != nil {
			response.FromError(ctx, err).Send(ctx, w)
			return
		}
		response.SuccessResponse{Data: Hints{EventCreated: created}}.Send(w)
	}
}

func Nav(w http.ResponseWriter, r *http.Request) {
	u := c.SessionUser(r.Context())
	response.SuccessResponse{Data: nav.Menu(u.Role)}.Send(w)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func getIP(req *http.Request) (string, error) {
	if forward := req.Header.Get("X-Forwarded-For"); forward != "" {
		return strings.TrimSpace(strings.Split(forward, ",")[0]), nil
	}
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("getIP: %q is not IP:port", req.RemoteAddr)
	}
	if userIP := net.ParseIP(ip); userIP != nil {
		return userIP.String(), nil
	}
	return "", fmt.Errorf("getIP: %q is not an IP", ip)
}
