package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/difurigo/avant-api/auth"
	"github.com/difurigo/avant-api/config"
	"github.com/difurigo/avant-api/httpapi"
	"github.com/difurigo/avant-api/repository"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("avant"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	log := lgr.GetLogger("main")

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := sql.Open(sqliteshim.ShimName, cfg.GetDSN())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	bunDB := bun.NewDB(db, sqlitedialect.New())

	repos := repository.NewManager(bunDB)
	if err := repos.Validate(); err != nil {
		log.Error("repository wiring error", "error", err)
		os.Exit(1)
	}

	if err := repos.InitSchema(ctx); err != nil {
		log.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg, lgr.GetLogger("tokens"))
	if err != nil {
		log.Error("token service configuration error", "error", err)
		os.Exit(1)
	}

	auther := auth.NewAuthenticator(
		repos.Users(),
		repos.Teams(),
		auth.SHA256Hasher{},
		tokens,
	).WithLogger(lgr.GetLogger("auth"))

	srv := httpapi.New(cfg, repos, auther, tokens,
		httpapi.WithServerLogger(lgr.GetLogger("http")),
	)

	go func() {
		if err := srv.Listen(cfg.GetHTTPAddr()); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	waitExitSignal()

	if err := srv.App().Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}
}

func waitExitSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}
