package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/nhle/todolist/internal/app"
	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/postgrest"
	"github.com/nhle/todolist/internal/session"
	"github.com/nhle/todolist/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "todo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	model.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parse flags: %w", err)
	}
	configPath, err := fs.GetString("config")
	if err != nil {
		return err
	}

	cfg, err := model.LoadConfig(configPath, fs)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogPath, "todo")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	sess, err := session.Open(cfg.Session)
	if err != nil {
		return err
	}

	backend, err := openBackend(cfg.Backend, sess)
	if err != nil {
		return err
	}
	defer backend.Close()
	log.Printf("starting with %s backend", cfg.Backend.Kind)

	p := tea.NewProgram(app.New(app.Deps{
		Store:     backend,
		Session:   sess,
		Localizer: i18n.NewPrinter(cfg.Display.Locale),
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openBackend connects the configured data service. The REST API key is
// taken from the environment first and the keyring second.
func openBackend(cfg model.BackendConfig, sess *session.Store) (store.Store, error) {
	switch cfg.Kind {
	case model.BackendREST:
		apiKey := cfg.RESTAPIKey
		if apiKey == "" {
			key, ok, err := sess.Get(session.KeyRESTAPIKey)
			if err != nil {
				return nil, fmt.Errorf("reading rest api key: %w", err)
			}
			if !ok {
				return nil, fmt.Errorf("no rest api key: set TODO_REST_API_KEY or store %q in the keyring",
					session.KeyRESTAPIKey)
			}
			apiKey = key
		}
		timeout := time.Duration(cfg.RESTTimeoutSec) * time.Second
		return postgrest.NewStore(postgrest.NewClient(cfg.RESTURL, apiKey, timeout)), nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		s, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
