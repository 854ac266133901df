package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"boothbuzz-admin/model"

	"github.com/google/uuid"
)

type DemoConfig struct {
	Email    string
	Password string
	Role     model.Role
	City     string
}

// Demo accepts exactly one configured credential pair. Identities it creates
// exist only as ids.
type Demo struct {
	cfg DemoConfig
}

// NewDemo refuses to build a demo strategy for production.
func NewDemo(cfg DemoConfig, production bool) (*Demo, error) {
	if production {
		return nil, ErrDemoInProduction
	}
	if cfg.Role == "" {
		cfg.Role = model.RoleSuperAdmin
	}
	return &Demo{cfg: cfg}, nil
}

func (d *Demo) Name() string { return "demo" }

func (d *Demo) SignIn(ctx context.Context, creds model.Credentials) (*model.User, error) {
	emailOK := strings.EqualFold(strings.TrimSpace(creds.Email), d.cfg.Email)
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(d.cfg.Password)) == 1
	if !emailOK || !passOK || d.cfg.Email == "" {
		return nil, ErrInvalidCredentials
	}
	return &model.User{
		ID:     "demo-user",
		AuthID: "demo-user",
		Name:   "Demo User",
		Email:  d.cfg.Email,
		Role:   d.cfg.Role,
		City:   d.cfg.City,
		Status: model.StatusActive,
	}, nil
}

func (d *Demo) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	return "demo-" + uuid.New().String(), nil
}

func (d *Demo) DeleteIdentity(ctx context.Context, uid string) error {
	return nil
}
