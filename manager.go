package labelkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labelreader/labelkit/credstore"
	"github.com/labelreader/labelkit/httpclient"
	"github.com/labelreader/labelkit/notify"
	"github.com/labelreader/labelkit/state"
)

// Manager orchestrates the session lifecycle: login and registration
// against the remote auth endpoint, explicit and forced logout, and the
// observable session state consumed by UI layers.
//
// Manager instances are built through [Builder.Build] and are safe for
// concurrent use afterwards.
type Manager struct {
	cfg     Config
	store   credstore.Store
	session *state.Cell[*Identity]
	client  *http.Client
	audit   *auditDispatcher
	metrics *Metrics

	// mu makes the credential cache, the durable store, and the session
	// cell mutate as one unit: no reader sees a token without the
	// matching identity.
	mu    sync.RWMutex
	creds credstore.Credentials
}

// Register creates an account at POST /auth/register. On success the
// credential store and session state are updated atomically and the new
// identity is returned. On any failure nothing local changes and the
// remote error surfaces verbatim.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (*Identity, error) {
	return m.authenticate(ctx, "/auth/register", req, req.Email, AuditRegister,
		MetricRegisterSuccess, MetricRegisterFailure)
}

// Login authenticates at POST /auth/login with the same contract as
// Register.
func (m *Manager) Login(ctx context.Context, req LoginRequest) (*Identity, error) {
	return m.authenticate(ctx, "/auth/login", req, req.Email, AuditLogin,
		MetricLoginSuccess, MetricLoginFailure)
}

func (m *Manager) authenticate(ctx context.Context, path string, payload any, email, event string, okMetric, failMetric MetricID) (*Identity, error) {
	var resp AuthResponse
	if err := httpclient.DoJSON(ctx, m.client, http.MethodPost, m.cfg.API.BaseURL+path, payload, &resp); err != nil {
		m.metricInc(failMetric)
		m.emit(ctx, AuditEvent{EventType: event, Email: email, Error: err.Error()})
		return nil, err
	}

	if err := m.establish(ctx, resp); err != nil {
		m.metricInc(failMetric)
		m.emit(ctx, AuditEvent{EventType: event, Email: email, UserID: resp.User.ID, Error: err.Error()})
		return nil, err
	}

	m.metricInc(okMetric)
	m.emit(ctx, AuditEvent{EventType: event, Email: email, UserID: resp.User.ID, Success: true})

	user := resp.User
	return &user, nil
}

// establish persists the credential pair and publishes the new identity
// as one atomic unit. A failed save leaves cache and session untouched.
func (m *Manager) establish(ctx context.Context, resp AuthResponse) error {
	blob, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	creds := credstore.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, creds, blob); err != nil {
		return err
	}
	m.creds = creds
	user := resp.User
	m.session.Set(&user)
	return nil
}

// Logout unconditionally clears the credential store and publishes a nil
// identity. Calling it while signed out is a no-op. Local state is
// cleared even when the durable store reports an error; that error is
// still returned.
func (m *Manager) Logout(ctx context.Context) error {
	return m.logout(ctx, false)
}

func (m *Manager) logout(ctx context.Context, forced bool) error {
	m.mu.Lock()
	wasAuthenticated := !m.creds.Empty()
	err := m.store.Clear(ctx)
	m.creds = credstore.Credentials{}
	m.session.Set(nil)
	m.mu.Unlock()

	if wasAuthenticated {
		if forced {
			m.metricInc(MetricForcedLogout)
			m.emit(ctx, AuditEvent{EventType: AuditForcedLogout, Success: err == nil})
		} else {
			m.metricInc(MetricLogout)
			m.emit(ctx, AuditEvent{EventType: AuditLogout, Success: err == nil})
		}
	}
	return err
}

// IsAuthenticated reports whether a non-empty access token is currently
// held. This is a local, synchronous check: it does not validate the
// token remotely, so it stays true for an expired or revoked token until
// the next API call fails with 401.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.creds.Empty()
}

// AccessToken returns the current access token, or "" when signed out.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.AccessToken
}

// RefreshToken returns the current refresh token, or "" when signed out.
func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.RefreshToken
}

// Current returns a snapshot of the signed-in identity, or nil.
func (m *Manager) Current() *Identity {
	return m.session.Get()
}

// Observe subscribes to session-state changes. The returned channel
// immediately carries the current identity (possibly nil), then every
// subsequent change in publish order. Cancel with the returned function.
func (m *Manager) Observe() (<-chan *Identity, func()) {
	return m.session.Subscribe()
}

// Client returns the authorized HTTP client. Every gateway must issue its
// calls through it so that credential injection and the 401 reaction
// apply uniformly.
func (m *Manager) Client() *http.Client {
	return m.client
}

// Notifier constructs a notification poller from Config.Notifications,
// issuing its calls through the authorized client and reporting poll and
// mark-read outcomes into the manager's counters. The caller owns its
// lifecycle: Start begins polling, Stop tears it down. Each call returns
// a fresh poller.
func (m *Manager) Notifier() *notify.Poller {
	return notify.NewPoller(m.client, m.cfg.API.BaseURL, m.cfg.Notifications.PollInterval,
		notify.WithPageSize(m.cfg.Notifications.PageSize),
		notify.WithTickObserver(func(err error) {
			if err != nil {
				m.metricInc(MetricPollFailure)
				return
			}
			m.metricInc(MetricPollSuccess)
		}),
		notify.WithMarkObserver(func(all bool) {
			if all {
				m.metricInc(MetricMarkAllRead)
				return
			}
			m.metricInc(MetricMarkRead)
		}),
	)
}

// MetricsSnapshot returns a copy of all counters. Empty when metrics are
// disabled.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	return m.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded because the
// dispatch buffer was full.
func (m *Manager) AuditDropped() uint64 {
	return m.audit.Dropped()
}

// Close releases the manager's background resources: the audit dispatcher
// drains and every session-state subscriber channel is closed.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.audit.Close()
	m.session.Close()
}

// seed initializes session state from the durable store at build time.
// A partial record — token without identity or the reverse — is cleared
// rather than trusted.
func (m *Manager) seed(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, m.cfg.Store.LoadTimeout)
	defer cancel()

	rec, err := m.store.Load(loadCtx)
	if err != nil {
		return fmt.Errorf("load persisted session: %w", err)
	}

	if rec.Credentials.Empty() && len(rec.Identity) == 0 {
		return nil
	}

	var identity Identity
	ok := rec.Consistent()
	if ok {
		ok = json.Unmarshal(rec.Identity, &identity) == nil
	}
	if !ok {
		if err := m.store.Clear(loadCtx); err != nil {
			return fmt.Errorf("clear partial session record: %w", err)
		}
		return nil
	}

	m.mu.Lock()
	m.creds = rec.Credentials
	m.session.Set(&identity)
	m.mu.Unlock()
	return nil
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}

func (m *Manager) emit(ctx context.Context, event AuditEvent) {
	if m == nil || m.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	m.audit.Emit(ctx, event)
}

// authorizerSession adapts Manager to the httpclient.Session interface.
// Logout through this path is recorded as a forced logout.
type authorizerSession struct {
	m *Manager
}

func (s authorizerSession) AccessToken() string {
	return s.m.AccessToken()
}

func (s authorizerSession) Logout(ctx context.Context) error {
	return s.m.logout(ctx, true)
}
