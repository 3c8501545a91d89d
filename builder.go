package rgbim

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/rgbim/rgbim-go/backend"
	"github.com/rgbim/rgbim-go/internal/audit"
	"github.com/rgbim/rgbim-go/internal/flows"
	"github.com/rgbim/rgbim-go/internal/metrics"
	"github.com/rgbim/rgbim-go/session"
)

// Builder assembles a [Manager]. Configure, then call [Builder.Build] once;
// construction is allocation-only until Build, which also starts session
// restoration in the background.
type Builder struct {
	config    Config
	store     session.Store
	backend   backend.Client
	auditSink AuditSink
	logger    *slog.Logger

	built bool
}

// New returns a Builder preloaded with defaults.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the whole configuration. Zero-valued fields fall back
// to defaults at Build.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore injects the persistence adapter. Required. The store stays
// caller-owned: [Manager.Close] does not close it.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithBackend injects a backend client. When omitted, Build constructs an
// HTTP client from [Config.Backend].
func (b *Builder) WithBackend(client backend.Client) *Builder {
	b.backend = client
	return b
}

// WithAuditSink sets the observability sink for lifecycle events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the structured logger used for swallowed storage errors
// and store internals. Defaults to a logger that discards everything.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires the flow service, and starts
// restoration. The returned Manager reports Loading until restoration
// completes; use [Manager.Ready] or [Manager.WaitReady] to synchronize.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	cfg := b.config
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, ErrStoreRequired
	}

	client := b.backend
	if client == nil {
		client = backend.NewHTTPClient(backend.HTTPOptions{
			BaseURL:   cfg.Backend.BaseURL,
			Timeout:   cfg.Backend.Timeout,
			UserAgent: cfg.Backend.UserAgent,
		})
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{
		cfg:     cfg,
		store:   b.store,
		slots:   session.DefaultSlots(cfg.Storage.SlotPrefix),
		backend: client,
		logger:  logger,
		loading: true,
		ready:   make(chan struct{}),
		metrics: metrics.New(metrics.Config{Enabled: cfg.Metrics.Enabled}),
	}

	m.dispatcher = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	mapRole := func(role string) string { return string(PlanFromRole(role)) }

	exchange := func(ctx context.Context, email, password string) (backend.Credentials, error) {
		return client.Login(ctx, email, password)
	}
	fetchProfile := func(ctx context.Context, token string) (backend.Profile, error) {
		return client.Profile(ctx, token)
	}

	m.flows = flows.New(flows.Deps{
		Login: flows.LoginDeps{
			Exchange:     exchange,
			FetchProfile: fetchProfile,
			MapRole:      mapRole,
			PersistPair:  m.persistPair,
		},
		Logout: flows.LogoutDeps{
			Invalidate: client.Logout,
			ClearStore: m.clearStore,
		},
		Refresh: flows.RefreshDeps{
			FetchProfile: fetchProfile,
			MapRole:      mapRole,
			PersistPair:  m.persistPair,
		},
		Restore: flows.RestoreDeps{
			ReadSlot: b.store.Read,
			Slots:    session.DefaultSlots(cfg.Storage.SlotPrefix),
		},
	})

	go m.restore(context.Background())

	return m, nil
}
