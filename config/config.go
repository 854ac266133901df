package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	StoreDSN          = "store.mysql"
	StoreMaxOpenConns = "store.max_open_conns"

	FirebaseProjectID             = "firebase.project_id"
	FirebaseServiceAccountKeyPath = "firebase.service_account_key_path"
	FirebaseAPIKey                = "firebase.api_key"
	FirebaseSignInURL             = "firebase.sign_in_url"

	VaultAddress    = "vault.address"
	VaultToken      = "vault.token"
	VaultUnSealKey  = "vault.unseal_key"
	VaultSecretPath = "vault.secret_path"

	Port        = "server.port"
	Environment = "server.environment"

	JWTSecret       = "auth.jwt_secret"
	JWTTTL          = "auth.jwt_ttl"
	DemoEnabled     = "auth.demo.enabled"
	DemoEmail       = "auth.demo.email"
	DemoPassword    = "auth.demo.password"
	DemoRole        = "auth.demo.role"
	DemoCity        = "auth.demo.city"
	SessionKey      = "session.key"
	SessionTTL      = "session.ttl"
	RedirectDelayMS = "form.redirect_delay_ms"

	RedisAddress  = "redis.address"
	RedisPassword = "redis.password"
	RedisDB       = "redis.db"

	StorageBucket    = "storage.bucket"
	StorageRegion    = "storage.region"
	StoragePublicURL = "storage.public_url"

	SocietySource = "society.source"

	TwilioAccountSID = "twilio.account_sid"
	TwilioAuthToken  = "twilio.auth_token"
	TwilioURL        = "twilio.url"
	TwilioFrom       = "twilio.from"
)

const production = "production"

func init() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault(Port, ":9000")
	viper.SetDefault(Environment, "development")
	viper.SetDefault(StoreMaxOpenConns, 25)
	viper.SetDefault(JWTTTL, "12h")
	viper.SetDefault(SessionTTL, "12h")
	viper.SetDefault(RedirectDelayMS, 1500)
	viper.SetDefault(RedisAddress, "localhost:6379")
	viper.SetDefault(StorageRegion, "ap-south-1")
	viper.SetDefault(SocietySource, "static")
	viper.SetDefault(FirebaseSignInURL, "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword")
	viper.SetDefault(VaultSecretPath, "secret/boothbuzz")
}

// IsProduction reports whether the service runs with production settings.
func IsProduction() bool {
	return strings.EqualFold(viper.GetString(Environment), production)
}

// Validate fails when a credential the service cannot run without is absent.
// There are no built-in fallbacks for these values.
func Validate() error {
	var missing []string
	for _, k := range []string{StoreDSN, JWTSecret, SessionKey} {
		if strings.TrimSpace(viper.GetString(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("validate: missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch n := len(viper.GetString(SessionKey)); n {
	case 16, 24, 32:
	default:
		return fmt.Errorf("validate: %s must be 16, 24 or 32 bytes, got %d", SessionKey, n)
	}

	if viper.GetBool(DemoEnabled) {
		if IsProduction() {
			return fmt.Errorf("validate: %s cannot be enabled in production", DemoEnabled)
		}
		if viper.GetString(DemoEmail) == "" || viper.GetString(DemoPassword) == "" {
			return fmt.Errorf("validate: demo login requires %s and %s", DemoEmail, DemoPassword)
		}
	}

	return nil
}
