package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValid(t *testing.T) {
	t.Helper()
	viper.Set(StoreDSN, "user:pass@tcp(localhost:3306)/boothbuzz")
	viper.Set(JWTSecret, "secret")
	viper.Set(SessionKey, "0123456789abcdef")
	viper.Set(DemoEnabled, false)
	viper.Set(Environment, "development")
	t.Cleanup(func() {
		viper.Set(StoreDSN, "")
		viper.Set(JWTSecret, "")
		viper.Set(SessionKey, "")
		viper.Set(DemoEnabled, false)
		viper.Set(Environment, "development")
	})
}

func TestValidate(t *testing.T) {
	setValid(t)
	require.NoError(t, Validate())
}

func TestValidateFailsWithoutStoreDSN(t *testing.T) {
	setValid(t)
	viper.Set(StoreDSN, "")

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), StoreDSN)
}

func TestValidateRejectsBadSessionKey(t *testing.T) {
	setValid(t)
	viper.Set(SessionKey, "short")

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16, 24 or 32 bytes")
}

func TestValidateRefusesDemoInProduction(t *testing.T) {
	setValid(t)
	viper.Set(DemoEnabled, true)
	viper.Set(DemoEmail, "demo@boothbuzz.in")
	viper.Set(DemoPassword, "demo123")
	viper.Set(Environment, "production")

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "production")

	viper.Set(Environment, "development")
	assert.NoError(t, Validate())
}
