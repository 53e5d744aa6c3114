package internal

import (
	"fmt"
	"log/slog"
	"strikeup/auth"
	"strikeup/clock"
	"strikeup/moderation"
	"strikeup/repositories"
	"strikeup/services"
	"strikeup/storage"

	"github.com/dgraph-io/badger/v4"
)

// App wires the store and every service on top of one Badger database.
type App struct {
	Store    *repositories.Store
	Auth     services.IAuthService
	Sessions services.ISessionService
	Matches  services.IMatchService
	Messages services.IMessageService
	Profiles services.IProfileService

	db  *badger.DB
	log *slog.Logger
}

func NewApp(config Config, log *slog.Logger, params auth.Params) (*App, error) {
	db, err := storage.OpenBadger(config.BadgerFilepath, config.InMemory)
	if err != nil {
		return nil, err
	}

	hasher := auth.NewHasher(params)
	var seed *storage.Snapshot
	if config.SeedSampleData {
		snapshot, err := repositories.SampleSnapshot(hasher.Hash)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sample data: %w", err)
		}
		seed = &snapshot
	}

	store, err := repositories.Open(storage.NewBadgerAdapter(db, log), log, seed)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var moderator services.ContentModerator
	if words := config.Words(); len(words) > 0 {
		replacement, err := CharacterRune(config.CharReplacement)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		m, err := moderation.NewModerator(words, replacement)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("moderation: %w", err)
		}
		moderator = m
		log.Debug("Message moderation enabled", "words", len(words))
	}

	authService := services.NewAuthService(log, store, hasher)
	if _, err = authService.UpgradeCredentials(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("credentials: %w", err)
	}

	realClock := clock.NewRealClock()
	return &App{
		Store:    store,
		Auth:     authService,
		Sessions: services.NewSessionService(log, store),
		Matches:  services.NewMatchService(log, store, realClock),
		Messages: services.NewMessageService(log, store, realClock, moderator, config.MaxContentLength, config.RecentActivityLimit),
		Profiles: services.NewProfileService(log, store),
		db:       db,
		log:      log,
	}, nil
}

func (a *App) Close() error {
	a.log.Debug("Closing BadgerDB...")
	return a.db.Close()
}
