package sync

import (
	"sync"
	"time"

	"github.com/existflow/droptrack/internal/logger"
	"github.com/existflow/droptrack/internal/model"
)

// Listener polls the server version and fetches the payload when
// another device has written a newer one. The tracker decides whether
// the fetched state actually applies.
type Listener struct {
	client       *Client
	pollInterval time.Duration
	mu           sync.Mutex
	lastSeen     int64
	stopCh       chan struct{}
	onState      func(model.Payload)
}

// NewListener creates a listener polling every interval. Call Start to
// begin polling.
func NewListener(client *Client, interval time.Duration) *Listener {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Listener{
		client:       client,
		pollInterval: interval,
		stopCh:       make(chan struct{}),
	}
}

// SetOnState sets the callback invoked with each newly fetched payload.
func (l *Listener) SetOnState(callback func(model.Payload)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onState = callback
}

// Start begins background polling.
func (l *Listener) Start() {
	go l.pollLoop()
}

func (l *Listener) pollLoop() {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if l.client.IsLoggedIn() {
				l.poll()
			}
		case <-l.stopCh:
			return
		}
	}
}

func (l *Listener) poll() {
	version, err := l.client.FetchVersion()
	if err != nil {
		logger.Debug("version poll failed", logger.F("error", err))
		return
	}

	l.mu.Lock()
	seen := l.lastSeen
	l.mu.Unlock()
	if version <= seen {
		return
	}

	remote, err := l.client.FetchState()
	if err != nil || remote == nil {
		return
	}

	l.mu.Lock()
	l.lastSeen = remote.LastUpdatedAt
	callback := l.onState
	l.mu.Unlock()

	if callback != nil {
		callback(*remote)
	}
}

// MarkSeen records a version the local side already has, so the next
// poll does not refetch it.
func (l *Listener) MarkSeen(version int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if version > l.lastSeen {
		l.lastSeen = version
	}
}

// Stop ends background polling.
func (l *Listener) Stop() {
	close(l.stopCh)
}
