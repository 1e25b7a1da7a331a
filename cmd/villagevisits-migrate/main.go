// Command villagevisits-migrate applies or rolls back the embedded schema migrations
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"villagevisits/internal/platform/config"
	"villagevisits/internal/platform/config/raw"
	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/store"
	"villagevisits/internal/platform/store/migrations"
)

func main() {
	if _, err := raw.LoadDotEnv(); err != nil {
		logger.Get().Panic().Err(err).Msg("load .env failed")
	}

	var (
		fSteps = flag.Int("n", 0, "number of migrations to roll back with down, 0 means all")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-n N] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	pgCfg := config.New().Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "villagevisits-migrate",
		PG: store.PGConfig{
			Enabled:  true,
			URL:      pgCfg.MustString("DBURL"),
			MaxConns: 2,
			LogSQL:   pgCfg.MayBool("LOG_SQL", false),
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

	switch flag.Arg(0) {
	case "up":
		err = migrations.Up(st.SQL)
	case "down":
		err = migrations.Down(st.SQL, *fSteps)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = migrations.Version(st.SQL)
		if err == nil {
			l.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		l.Fatal().Err(err).Str("cmd", flag.Arg(0)).Msg("migration failed")
	}
	if flag.Arg(0) != "version" {
		l.Info().Str("cmd", flag.Arg(0)).Msg("migrations done")
	}
}
