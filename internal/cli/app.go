package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/faizmokh/jots/internal/config"
	"github.com/faizmokh/jots/internal/files"
	"github.com/faizmokh/jots/internal/logging"
	"github.com/faizmokh/jots/internal/notes"
)

// app holds the state shared by every command. The service is built on
// first use so persistent flags are parsed before the vault is opened.
type app struct {
	vault    string
	logLevel string
	stdin    io.Reader

	cfg     config.Config
	logger  logging.Logger
	service *notes.Service
}

func newApp() *app {
	return &app{stdin: os.Stdin}
}

func (a *app) vaultDir() (string, error) {
	if a.vault != "" {
		return a.vault, nil
	}
	return files.ResolveBasePath()
}

func (a *app) load() (*notes.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	vault, err := a.vaultDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(vault)
	if err != nil {
		return nil, err
	}
	cfg, err = cfg.WithLogLevel(a.logLevel)
	if err != nil {
		return nil, err
	}

	provider, err := logging.NewProvider(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	manager, err := files.NewManager(vault, files.WithDailyNotes(cfg.Daily.Folder, cfg.Daily.Format))
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	logger := provider.Logger("jots")
	service, err := notes.NewService(manager, engine, logger.WithFields(map[string]any{"module": "notes"}))
	if err != nil {
		return nil, err
	}

	a.cfg = cfg
	a.logger = logger
	a.service = service
	return service, nil
}
