package cli

import (
	"fmt"
	"time"

	"github.com/existflow/droptrack/internal/config"
	"github.com/existflow/droptrack/internal/logger"
	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/state"
	"github.com/existflow/droptrack/internal/store"
	"github.com/existflow/droptrack/internal/sync"
)

// App bundles everything a command needs: the local store, the tracker
// that owns the payload, and the sync client for remote operations.
type App struct {
	Store    *store.Store
	Tracker  *state.Tracker
	Client   *sync.Client
	Config   *config.Config
	listener *sync.Listener
}

// openApp opens the local store and loads the tracker. When a sync
// session exists, remote pushes are wired up so every mutation
// propagates after the debounce window.
func openApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	s, err := store.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	tr := state.New(s, state.SystemClock(),
		state.NewDebouncer(state.PushDelay),
		state.NewDebouncer(state.PushDelay))
	if err := tr.Load(); err != nil {
		s.Close()
		return nil, err
	}

	client, err := sync.NewClient()
	if err != nil {
		s.Close()
		return nil, err
	}
	if client.IsLoggedIn() {
		tr.SetPush(client.PushState)
	}

	return &App{Store: s, Tracker: tr, Client: client, Config: cfg}, nil
}

// StartListener begins polling the server for writes from other
// devices. onRefresh runs after a remote payload was applied.
func (a *App) StartListener(onRefresh func()) {
	if !a.Client.IsLoggedIn() {
		return
	}

	interval := time.Duration(a.Config.PollIntervalSec) * time.Second
	a.listener = sync.NewListener(a.Client, interval)
	a.listener.MarkSeen(a.Tracker.Payload().LastUpdatedAt)
	a.listener.SetOnState(func(remote model.Payload) {
		if a.Tracker.ApplyRemote(remote) && onRefresh != nil {
			onRefresh()
		}
	})
	a.listener.Start()
}

// Close flushes pending pushes and releases resources.
func (a *App) Close() {
	if a.listener != nil {
		a.listener.Stop()
	}
	a.Tracker.Flush()
	a.Tracker.Stop()
	if err := a.Store.Close(); err != nil {
		logger.Warn("store close failed", logger.F("error", err))
	}
}

// findProject resolves a project id argument against the tracker.
func findProject(tr *state.Tracker, idArg string) (model.Project, error) {
	var id int64
	if _, err := fmt.Sscanf(idArg, "%d", &id); err != nil {
		return model.Project{}, fmt.Errorf("invalid project id: %s", idArg)
	}
	p := model.FindByID(tr.Projects(), id)
	if p == nil {
		return model.Project{}, fmt.Errorf("project not found: %d", id)
	}
	return *p, nil
}
