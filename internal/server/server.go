// Package server implements the MCP tool handlers backed by the bridge
// client and an optional page attachment.
package server

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/config"
	"github.com/mj1618/bridgectl/internal/host"
)

// Options holds server configuration.
type Options struct {
	// BridgeURL is the automation bridge base URL.
	BridgeURL string
	// ConfigPath overrides the default panel config location.
	ConfigPath string
	// AttachHost, when set, lazily connects to the inspector page the
	// first time a tool needs one.
	AttachHost func() (host.Host, error)
	// CacheTTL bounds how long a grabbed selection is reused. 0 disables
	// the cache.
	CacheTTL time.Duration
	Log      *zap.Logger
}

// Server wraps the bridge client, panel config store, and selection cache
// shared by all tool handlers.
type Server struct {
	client *bridge.Client
	store  *config.Store
	cache  *SelectionCache
	log    *zap.Logger

	attachHost func() (host.Host, error)
	hostMu     sync.Mutex
	host       host.Host
}

// New creates a server. The bridge is not contacted until a tool runs.
func New(opts Options) (*Server, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	store, err := config.NewStore(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return &Server{
		client:     bridge.NewClient(opts.BridgeURL),
		store:      store,
		cache:      NewSelectionCache(opts.CacheTTL),
		attachHost: opts.AttachHost,
		log:        log,
	}, nil
}

// pageHost returns the page attachment, connecting on first use.
// The caller must hold hostMu for the duration of its use.
func (s *Server) pageHost() (host.Host, error) {
	if s.host != nil {
		return s.host, nil
	}
	if s.attachHost == nil {
		return nil, fmt.Errorf("no inspector page configured (set --devtools-url)")
	}
	h, err := s.attachHost()
	if err != nil {
		return nil, err
	}
	s.host = h
	return h, nil
}

// Close releases the page attachment if one was made.
func (s *Server) Close() error {
	s.hostMu.Lock()
	defer s.hostMu.Unlock()
	if s.host != nil {
		err := s.host.Close()
		s.host = nil
		return err
	}
	return nil
}
