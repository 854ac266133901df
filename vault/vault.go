// Package vault reads service credentials from HashiCorp Vault.
package vault

import (
	"fmt"

	"boothbuzz-admin/config"

	"github.com/hashicorp/vault/api"
	"github.com/spf13/viper"
)

// Secret names at the secret path and the configuration keys they fill.
var Keys = map[string]string{
	"store_dsn":         config.StoreDSN,
	"jwt_secret":        config.JWTSecret,
	"session_key":       config.SessionKey,
	"firebase_api_key":  config.FirebaseAPIKey,
	"twilio_auth_token": config.TwilioAuthToken,
}

// Reader is the logical read used to fetch secrets.
type Reader interface {
	Read(path string) (*api.Secret, error)
}

type Vault struct {
	SecretPath string
	*api.Client
}

func New(token, unsealKey, address, secretPath string) (*Vault, error) {
	client, err := api.NewClient(&api.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("new: error initializing vault: %w", err)
	}

	client.SetToken(token)

	if unsealKey != "" {
		s := client.Sys()
		status, err := s.SealStatus()
		if err != nil {
			return nil, fmt.Errorf("new: error getting seal status: %w", err)
		}
		if status.Sealed {
			unsealResponse, err := s.Unseal(unsealKey)
			if err != nil {
				return nil, fmt.Errorf("new: error getting unseal response: %w", err)
			}
			if unsealResponse.Sealed {
				return nil, fmt.Errorf("new: vault unseal unsuccessful")
			}
		}
	}

	return &Vault{SecretPath: secretPath, Client: client}, nil
}

// Secrets reads the string values stored at path. Both KV v1 and KV v2
// ("data" nested under "data") layouts are accepted.
func Secrets(r Reader, path string) (map[string]string, error) {
	secret, err := r.Read(path)
	if err != nil {
		return nil, fmt.Errorf("secrets: error reading %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secrets: no secret at %s", path)
	}

	data := secret.Data
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}

	out := map[string]string{}
	for k, v := range data {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}

// Apply sets every known secret into viper and returns the keys it set.
// Values already configured are overridden.
func Apply(secrets map[string]string) []string {
	var set []string
	for name, key := range Keys {
		if v, ok := secrets[name]; ok && v != "" {
			viper.Set(key, v)
			set = append(set, key)
		}
	}
	return set
}

// Resolve reads the configured secret path and applies it.
func (v *Vault) Resolve() ([]string, error) {
	secrets, err := Secrets(v.Logical(), v.SecretPath)
	if err != nil {
		return nil, err
	}
	return Apply(secrets), nil
}
