// @title         Village Visits API
// @version       0.1.0
// @description   Village, resident and visit records with role scoped access
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"villagevisits/internal/platform/auth"
	"villagevisits/internal/platform/blob"
	"villagevisits/internal/platform/config"
	"villagevisits/internal/platform/config/raw"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/mail"
	"villagevisits/internal/platform/metrics"
	phttp "villagevisits/internal/platform/net/http"
	"villagevisits/internal/platform/store"

	"villagevisits/internal/services/api"
)

const appName = "villagevisits-api"

func main() {
	// .env before the first config or logger read
	if _, err := raw.LoadDotEnv(); err != nil {
		logger.Get().Panic().Err(err).Msg("load .env failed")
	}

	root := config.New()
	root.Require("SERVICE_PGSQL_DBURL", "AUTH_JWT_SECRET")

	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")
	authCfg := root.Prefix("AUTH_")
	mailCfg := root.Prefix("MAIL_")
	blobCfg := root.Prefix("BLOB_")
	evCfg := root.Prefix("EVENTS_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: appName,
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQuery:   pgCfg.MayDuration("SLOW_QUERY", 500*time.Millisecond),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			AutoMigrate: pgCfg.MayBool("AUTO_MIGRATE", false),
		},
		RDS: store.RedisConfig{
			Enabled: rdsCfg.MayString("URL", "") != "",
			URL:     rdsCfg.MayString("URL", ""),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	m := metrics.New()

	signer, err := auth.NewSigner(auth.TokenConfig{
		Secret:   authCfg.MustString("JWT_SECRET"),
		Issuer:   authCfg.MayString("JWT_ISSUER", appName),
		Audience: authCfg.MayString("JWT_AUDIENCE", ""),
		TTL:      authCfg.MayDuration("JWT_TTL", auth.DefaultTTL),
	})
	if err != nil {
		l.Panic().Err(err).Msg("token signer")
	}
	var revoked auth.Revocations = auth.NewMemoryRevocations()
	if st.Redis != nil {
		revoked = auth.NewRedisRevocations(st.Redis)
	}

	// outgoing mail, inert without MAIL_HOST
	var queue mail.Queue = mail.Nop{Log: *logger.Named("mail")}
	mc := mail.Config{
		Host:     mailCfg.MayString("HOST", ""),
		Port:     mailCfg.MayInt("PORT", 587),
		Username: mailCfg.MayString("USERNAME", ""),
		Password: mailCfg.MayString("PASSWORD", ""),
		From:     mailCfg.MayString("FROM", "no-reply@villagevisits.local"),
		Workers:  mailCfg.MayInt("WORKERS", 4),
		Timeout:  mailCfg.MayDuration("TIMEOUT", 15*time.Second),
	}
	if mc.Enabled() {
		smtp, err := mail.NewSMTP(mc)
		if err != nil {
			l.Panic().Err(err).Msg("smtp client")
		}
		d, err := mail.NewDispatcher(smtp, mc.Workers, *logger.Named("mail"), m)
		if err != nil {
			l.Panic().Err(err).Msg("mail dispatcher")
		}
		defer func() {
			if err := d.Close(10 * time.Second); err != nil {
				l.Error().Err(err).Msg("mail pool did not drain")
			}
		}()
		queue = d
	}

	blobs, err := blob.New(blob.Config{
		Endpoint:  blobCfg.MayString("ENDPOINT", ""),
		AccessKey: blobCfg.MayString("ACCESS_KEY", ""),
		SecretKey: blobCfg.MayString("SECRET_KEY", ""),
		Bucket:    blobCfg.MayString("BUCKET", "visits"),
		UseSSL:    blobCfg.MayBool("SSL", false),
		PublicURL: blobCfg.MayString("PUBLIC_URL", ""),
	})
	if err != nil {
		l.Panic().Err(err).Msg("object storage")
	}

	// domain events, inert without EVENTS_BROKERS
	var pub events.Publisher = events.Nop{}
	if brokers := evCfg.MayCSV("BROKERS", nil); len(brokers) > 0 {
		k, err := events.NewKafka(events.Config{
			Brokers:  brokers,
			Topic:    evCfg.MayString("TOPIC", "villagevisits.events"),
			ClientID: appName,
			Linger:   evCfg.MayDuration("LINGER", 0),
		}, *logger.Named("events"), m)
		if err != nil {
			l.Panic().Err(err).Msg("event producer")
		}
		defer func() {
			cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := k.Close(cctx); err != nil {
				l.Error().Err(err).Msg("event producer flush")
			}
		}()
		pub = k
	}

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Tokens:         auth.NewTokens(signer, revoked),
		Hasher:         auth.NewHasher(authCfg.MayInt("BCRYPT_COST", auth.DefaultCost)),
		Mail:           queue,
		Blobs:          blobs,
		Events:         pub,
		Metrics:        m,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}); err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
