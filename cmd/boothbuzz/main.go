package main

import (
	"context"
	"flag"
	l "log"

	"boothbuzz-admin/config"
	c "boothbuzz-admin/context"
	"boothbuzz-admin/factory"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/router"
	"boothbuzz-admin/vault"

	"github.com/codegangsta/negroni"
	"github.com/spf13/viper"
)

var (
	version string
)

const defaultCorrelationID = "00000000.00000000"

var ctx context.Context

func init() {
	ctx = c.SetContextWithValue(context.Background(), c.ContextKeyCorrelationID, defaultCorrelationID)
}

func main() {
	cfgPath := flag.String("CONFIG_PATH", "./config.yaml", "Path to config file")
	logLevel := flag.String("LOG_LEVEL", "info", "Log level")
	flag.Parse()

	viper.SetConfigFile(*cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		l.Fatalln("error reading config:", err)
	}
	logger.SetLevel(*logLevel)

	if addr := viper.GetString(config.VaultAddress); addr != "" {
		v, err := vault.New(
			viper.GetString(config.VaultToken),
			viper.GetString(config.VaultUnSealKey),
			addr,
			viper.GetString(config.VaultSecretPath))
		if err != nil {
			logger.Fatalf(ctx, "main: error creating vault client: %+v", err)
		}
		applied, err := v.Resolve()
		if err != nil {
			logger.Fatalf(ctx, "main: error reading secrets from vault: %+v", err)
		}
		logger.Infof(ctx, "main: applied %d secrets from vault", len(applied))
	}

	if err := config.Validate(); err != nil {
		logger.Fatalf(ctx, "main: %+v", err)
	}

	logger.Infof(ctx, "main: starting boothbuzz-admin %s in %s", version, viper.GetString(config.Environment))
	muxRouter := router.Router(ctx, factory.NewFactory())

	n := negroni.New()
	n.UseHandler(muxRouter)
	n.Run(viper.GetString(config.Port))
}
