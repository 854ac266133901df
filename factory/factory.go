package factory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"boothbuzz-admin/auth"
	"boothbuzz-admin/config"
	fb "boothbuzz-admin/firebase"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/model"
	"boothbuzz-admin/session"
	"boothbuzz-admin/storage"
	"boothbuzz-admin/store"
	"boothbuzz-admin/twilio"

	firebase "firebase.google.com/go"
	"github.com/go-redis/redis"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

var db sync.Once
var fa sync.Once
var rc sync.Once
var au sync.Once
var bl sync.Once

// Factory builds each shared client once and hands the same instance to
// every handler.
type Factory interface {
	Store(ctx context.Context) store.Client
	FirebaseApp(ctx context.Context) *firebase.App
	Redis(ctx context.Context) *redis.Client
	Authenticator(ctx context.Context) auth.Authenticator
	Tokens() *auth.Tokens
	Sessions(ctx context.Context) *session.Store
	// Blobs is nil when no bucket is configured.
	Blobs(ctx context.Context) storage.Blobs
	SMS() twilio.Sender
	RedirectDelay() time.Duration
}

type factory struct {
	store  store.Client
	app    *firebase.App
	redis  *redis.Client
	authn  auth.Authenticator
	blobs  storage.Blobs
	tokens *auth.Tokens
}

func NewFactory() Factory {
	return &factory{
		tokens: auth.NewTokens([]byte(viper.GetString(config.JWTSecret)), viper.GetDuration(config.JWTTTL)),
	}
}

func (f *factory) Store(ctx context.Context) store.Client {
	var dbError error
	db.Do(func() {
		cfg, err := mysql.ParseDSN(viper.GetString(config.StoreDSN))
		if err != nil {
			dbError = err
			return
		}
		cfg.ParseTime = true
		cfg.Loc = time.UTC

		sqlDB, err := sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			dbError = err
			return
		}
		sqlDB.SetMaxOpenConns(viper.GetInt(config.StoreMaxOpenConns))
		if err := sqlDB.PingContext(ctx); err != nil {
			logger.Warnf(ctx, "Store: database not reachable yet: %v", err)
		}
		f.store = store.NewMySQL(sqlDB)
	})

	if dbError != nil {
		logger.Fatalf(ctx, "Could not establish connection to the DB: %+v", dbError)
	}

	return f.store
}

func (f *factory) FirebaseApp(ctx context.Context) *firebase.App {
	var faError error
	fa.Do(func() {
		var opts []option.ClientOption
		if path := viper.GetString(config.FirebaseServiceAccountKeyPath); path != "" {
			opts = append(opts, option.WithCredentialsFile(path))
		}
		cfg := &firebase.Config{ProjectID: viper.GetString(config.FirebaseProjectID)}
		app, err := firebase.NewApp(context.Background(), cfg, opts...)
		if err != nil {
			faError = err
			return
		}
		f.app = app
	})

	if faError != nil {
		logger.Fatalf(ctx, "firebaseApp: error initializing firebase app: %+v", faError)
	}

	return f.app
}

func (f *factory) Redis(ctx context.Context) *redis.Client {
	rc.Do(func() {
		f.redis = redis.NewClient(&redis.Options{
			Addr:     viper.GetString(config.RedisAddress),
			Password: viper.GetString(config.RedisPassword),
			DB:       viper.GetInt(config.RedisDB),
		})
		if err := f.redis.Ping().Err(); err != nil {
			logger.Warnf(ctx, "Redis: %s not reachable yet: %v", viper.GetString(config.RedisAddress), err)
		}
	})
	return f.redis
}

// Authenticator returns the demo strategy when it is enabled and Firebase
// otherwise.
func (f *factory) Authenticator(ctx context.Context) auth.Authenticator {
	var auError error
	au.Do(func() {
		if viper.GetBool(config.DemoEnabled) {
			demo, err := auth.NewDemo(auth.DemoConfig{
				Email:    viper.GetString(config.DemoEmail),
				Password: viper.GetString(config.DemoPassword),
				Role:     model.Role(viper.GetString(config.DemoRole)),
				City:     viper.GetString(config.DemoCity),
			}, config.IsProduction())
			if err != nil {
				auError = err
				return
			}
			logger.Warnf(ctx, "Authenticator: demo login is enabled for %s", viper.GetString(config.DemoEmail))
			f.authn = demo
			return
		}

		admin, err := fb.NewAdmin(ctx, f.FirebaseApp(ctx))
		if err != nil {
			auError = err
			return
		}
		signer := fb.NewPasswordSignIn(viper.GetString(config.FirebaseSignInURL), viper.GetString(config.FirebaseAPIKey))
		f.authn = auth.NewFirebase(admin, signer, f.Store(ctx))
	})

	if auError != nil {
		logger.Fatalf(ctx, "Authenticator: %+v", auError)
	}

	return f.authn
}

func (f *factory) Tokens() *auth.Tokens {
	return f.tokens
}

func (f *factory) Sessions(ctx context.Context) *session.Store {
	return session.New(session.NewRedis(f.Redis(ctx)), []byte(viper.GetString(config.SessionKey)), viper.GetDuration(config.SessionTTL))
}

func (f *factory) Blobs(ctx context.Context) storage.Blobs {
	bl.Do(func() {
		s3, err := storage.NewS3(ctx,
			viper.GetString(config.StorageBucket),
			viper.GetString(config.StorageRegion),
			viper.GetString(config.StoragePublicURL))
		if err != nil {
			logger.Warnf(ctx, "Blobs: image uploads disabled: %v", err)
			return
		}
		f.blobs = s3
	})
	return f.blobs
}

func (f *factory) SMS() twilio.Sender {
	sid := viper.GetString(config.TwilioAccountSID)
	if sid == "" {
		return twilio.Noop{}
	}
	return twilio.NewSender(sid, viper.GetString(config.TwilioAuthToken), viper.GetString(config.TwilioURL), viper.GetString(config.TwilioFrom))
}

func (f *factory) RedirectDelay() time.Duration {
	return time.Duration(viper.GetInt64(config.RedirectDelayMS)) * time.Millisecond
}
