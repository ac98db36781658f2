package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"pockd/internal/auth"
	"pockd/internal/config"
	"pockd/internal/pocket"
	"pockd/internal/service"
	"pockd/internal/storage/sqlite"
)

// app wires the full stack once per command invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sqlx.DB
	session *auth.Session
	client  *pocket.Client
	sync    *service.SyncService
	library *service.LibraryService
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg.LogLevel)

	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	articles := sqlite.NewArticleStore(db)
	tags := sqlite.NewTagStore(db)
	links := sqlite.NewArticleTagStore(db)

	session := auth.NewSession(config.DataDir())
	client := pocket.New(pocket.Config{
		BaseURL:     cfg.API.BaseURL,
		ConsumerKey: cfg.API.ConsumerKey,
		RedirectURI: cfg.API.RedirectURI,
		Timeout:     cfg.API.Timeout,
	}, session, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		session: session,
		client:  client,
		sync:    service.NewSyncService(client, articles, tags, links, logger),
		library: service.NewLibraryService(client, articles, tags, links, logger),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
