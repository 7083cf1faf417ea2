package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/clerk"
	"github.com/bandq-jp/hirelog/pkg/configs/backend"
	kpg "github.com/bandq-jp/hirelog/pkg/domain/hirelog/db/postgres"
	"github.com/bandq-jp/hirelog/pkg/logger"
)

const app = "hirelogd"

// version can be overridden at build time.
var version = "unknown"

var (
	flagDebug bool
	flagJSON  bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hirelogd is the interview evaluation tracking API server",
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("%s version: %s\n", app, version)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Run: func(*cobra.Command, []string) {
			serve()
		},
	}

	upgradeSchemaCmd = &cobra.Command{
		Use:   "upgrade-schema",
		Short: "Apply database schema versions newer than the recorded one",
		Run: func(*cobra.Command, []string) {
			upgradeSchema()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "json format for logging")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(upgradeSchemaCmd)
}

func serve() {
	zlog, err := logger.New(flagJSON, flagDebug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	conf, err := backend.Load()
	if err != nil {
		zlog.Fatal("loading configuration", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	database, err := kpg.New(
		ctx, conf.DatabaseURL,
		kpg.WithSchemaRepository(conf.SchemaRepository),
	)
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}
	defer database.Close()

	if conf.SchemaRepository != "" {
		// refuse to serve against an outdated schema
		ctx_, ccan := database.Schema().Context(ctx)
		defer ccan()
		ctx = ctx_
	}

	keys := auth.NewKeyset(conf.ClerkJWKSURL, auth.WithTTL(conf.JWKSCacheTTL))
	middleware := auth.NewMiddleware(
		auth.NewVerifier(keys, conf.ClerkIssuer),
		database.User(), database.Company(),
		conf.AllowedEmailDomain,
	)

	var inviter *clerk.Client
	if conf.ClerkSecretKey != "" {
		inviter = clerk.New(conf.ClerkSecretKey)
	} else {
		zlog.Warn("CLERK_SECRET_KEY is not set; the invitation endpoint is disabled")
	}

	e := newServer(database, middleware, inviter, conf)

	zlog.Info("starting the server",
		zap.String("version", version), zap.Int("port", conf.Port),
	)

	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		if err := e.Start(fmt.Sprintf(":%d", conf.Port)); err != nil && err != http.ErrServerClosed {
			ch <- err
		}
	}()

	exit := 0
	select {
	case <-ctx.Done():
		if err := ctx.Err(); err != nil {
			zlog.Error("context has been done",
				zap.Error(err), zap.NamedError("cause", context.Cause(ctx)),
			)
			exit = 1
		}
	case err := <-ch:
		if err != nil {
			zlog.Error("server stopped", zap.Error(err))
			exit = 1
		}
	}

	zlog.Info("shutting down")
	qctx, qcancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer qcancel()
	if err := e.Shutdown(qctx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
		exit = 1
	}
	os.Exit(exit)
}

// upgradeSchema needs only DATABASE_URL and SCHEMA_REPOSITORY, so it
// reads them directly instead of demanding the full server config.
func upgradeSchema() {
	zlog, err := logger.New(flagJSON, flagDebug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	_ = godotenv.Load()
	url := os.Getenv("DATABASE_URL")
	repo := os.Getenv("SCHEMA_REPOSITORY")
	if url == "" || repo == "" {
		zlog.Fatal("DATABASE_URL and SCHEMA_REPOSITORY are required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	database, err := kpg.New(ctx, url, kpg.WithSchemaRepository(repo))
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Schema().Upgrade(ctx); err != nil {
		zlog.Fatal("upgrading the schema", zap.Error(err))
	}

	current, err := database.Schema().Version(ctx)
	if err != nil {
		zlog.Fatal("reading the schema version", zap.Error(err))
	}
	zlog.Info("schema is up to date", zap.Int("version", current))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
