package labelkit

import (
	"context"
	"net/http"

	"github.com/labelreader/labelkit/credstore"
	"github.com/labelreader/labelkit/httpclient"
	"github.com/labelreader/labelkit/state"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Manager]. Construction is allocation-only except
// for the single boot-time store read that seeds session state.
type Builder struct {
	config Config
	redis  *redis.Client
	store  credstore.Store
	base   *http.Client

	auditSink  AuditSink
	onRedirect func()

	built bool
}

// New returns a builder loaded with defaults.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL sets the API root.
func (b *Builder) WithBaseURL(url string) *Builder {
	b.config.API.BaseURL = url
	return b
}

// WithRedis backs the credential store with a Redis client, keyed under
// the configured prefix.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithStore supplies a credential store directly. It takes precedence
// over WithRedis.
func (b *Builder) WithStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient supplies the base HTTP client whose transport the
// authorizer decorates. Its timeout, cookie jar, and redirect policy are
// carried into the authorized client. Without it, a client with the
// configured timeout and the default transport is used.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.base = client
	return b
}

// WithAuditSink enables the audit trail and routes session events to
// sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithRedirectHandler registers the navigation signal fired after a
// forced logout — typically the UI's "go to the sign-in surface" hook.
func (b *Builder) WithRedirectHandler(fn func()) *Builder {
	b.onRedirect = fn
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires the authorized transport
// chain, seeds session state from the durable store, and returns the
// ready Manager. A builder can be used once.
func (b *Builder) Build(ctx context.Context) (*Manager, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, ErrStoreRequired
		}
		store = credstore.NewRedisStore(b.redis, b.config.Store.RedisPrefix)
	}

	m := &Manager{
		cfg:     b.config,
		store:   store,
		session: state.NewCell[*Identity](nil),
		audit:   newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics: newMetrics(b.config.Metrics),
	}

	base := b.base
	if base == nil {
		base = &http.Client{Timeout: b.config.API.Timeout}
	}

	authorizer := httpclient.NewAuthorizer(base.Transport, authorizerSession{m})
	authorizer.OnDenied(func(status int, url string) {
		switch status {
		case http.StatusUnauthorized:
			m.metricInc(MetricUnauthorized)
		case http.StatusForbidden:
			m.metricInc(MetricForbidden)
		}
	})
	onRedirect := b.onRedirect
	authorizer.OnRedirect(func() {
		m.emit(context.Background(), AuditEvent{EventType: AuditRedirect, Success: true})
		if onRedirect != nil {
			onRedirect()
		}
	})

	var transport http.RoundTripper = authorizer
	if !b.config.API.DisableRequestID {
		transport = httpclient.NewRequestID(transport)
	}
	m.client = &http.Client{
		Transport:     transport,
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}

	if err := m.seed(ctx); err != nil {
		m.audit.Close()
		return nil, err
	}

	b.built = true
	return m, nil
}
