package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/labelreader/labelkit/httpclient"
	"github.com/labelreader/labelkit/state"
)

const defaultPageSize = 20

// Poller fetches the unread-notification count on a fixed interval and
// republishes it through a broadcast cell. It starts Idle; Start moves it
// to Polling for the rest of its life unless Stop is called.
//
// The poller issues every call through the authorized client it was
// given, so credential injection and the 401 reaction apply to its
// traffic like any other gateway's.
type Poller struct {
	client   *http.Client
	baseURL  string
	interval time.Duration
	pageSize int

	unread *state.Cell[int]
	group  singleflight.Group

	onTick func(err error)
	onMark func(all bool)

	done     chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopOnce sync.Once
}

// Option adjusts a Poller at construction time.
type Option func(*Poller)

// WithPageSize sets the default page size for List.
func WithPageSize(size int) Option {
	return func(p *Poller) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithTickObserver registers a callback invoked after every poll attempt
// with its error (nil on success). Used for metrics; must not block.
func WithTickObserver(fn func(err error)) Option {
	return func(p *Poller) {
		p.onTick = fn
	}
}

// WithMarkObserver registers a callback invoked after every successful
// mark-read call, with all set for MarkAllRead. Used for metrics; must
// not block.
func WithMarkObserver(fn func(all bool)) Option {
	return func(p *Poller) {
		p.onMark = fn
	}
}

// NewPoller returns an idle poller. client must be the session manager's
// authorized client; baseURL is the API root the "/notifications" paths
// are appended to; interval is the fixed poll tick.
func NewPoller(client *http.Client, baseURL string, interval time.Duration, opts ...Option) *Poller {
	if client == nil {
		client = http.DefaultClient
	}
	p := &Poller{
		client:   client,
		baseURL:  baseURL,
		interval: interval,
		pageSize: defaultPageSize,
		unread:   state.NewCell(0),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the recurring fetch. Calling Start more than once is a
// no-op.
func (p *Poller) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.wg.Add(1)
	go p.run()
}

// Stop cancels the recurring fetch and waits for the loop to exit, then
// closes every counter subscriber. Safe to call multiple times and
// without a prior Start.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
		p.unread.Close()
	})
}

func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			timeout := p.interval
			if timeout < time.Second {
				timeout = time.Second
			}
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			_, err := p.Refresh(ctx)
			cancel()
			if p.onTick != nil {
				p.onTick(err)
			}
		case <-p.done:
			return
		}
	}
}

// UnreadCount returns the last published count.
func (p *Poller) UnreadCount() int {
	return p.unread.Get()
}

// ObserveUnread subscribes to counter changes. The channel immediately
// carries the current count, then every subsequent published value.
func (p *Poller) ObserveUnread() (<-chan int, func()) {
	return p.unread.Subscribe()
}

// Refresh fetches the unread count now and publishes it, with the same
// contract as a timer tick. Concurrent refreshes collapse into a single
// remote call. On error the last published count stands.
func (p *Poller) Refresh(ctx context.Context) (int, error) {
	v, err, _ := p.group.Do("unread-count", func() (any, error) {
		var count int
		url := p.baseURL + "/notifications/unread-count"
		if err := httpclient.DoJSON(ctx, p.client, http.MethodGet, url, nil, &count); err != nil {
			return 0, err
		}
		p.unread.Set(count)
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// MarkRead marks one notification read. On success the local count is
// optimistically decremented, clamped at zero; the next poll overwrites
// with ground truth. On failure the count is unchanged and the error
// surfaces.
func (p *Poller) MarkRead(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/notifications/%d/read", p.baseURL, id)
	if err := httpclient.DoJSON(ctx, p.client, http.MethodPut, url, nil, nil); err != nil {
		return err
	}
	p.unread.Update(func(count int) int {
		if count > 0 {
			return count - 1
		}
		return 0
	})
	if p.onMark != nil {
		p.onMark(false)
	}
	return nil
}

// MarkAllRead marks every notification read and resets the local count to
// zero on success.
func (p *Poller) MarkAllRead(ctx context.Context) error {
	url := p.baseURL + "/notifications/read-all"
	if err := httpclient.DoJSON(ctx, p.client, http.MethodPut, url, nil, nil); err != nil {
		return err
	}
	p.unread.Set(0)
	if p.onMark != nil {
		p.onMark(true)
	}
	return nil
}

// List fetches one page of notifications.
func (p *Poller) List(ctx context.Context, opts ListOptions) (*Page, error) {
	size := opts.Size
	if size <= 0 {
		size = p.pageSize
	}
	url := p.baseURL + "/notifications?page=" + strconv.Itoa(opts.Page) + "&size=" + strconv.Itoa(size)
	if opts.UnreadOnly {
		url += "&unreadOnly=true"
	}

	var page Page
	if err := httpclient.DoJSON(ctx, p.client, http.MethodGet, url, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete removes one notification. The unread count is left to the next
// poll; the server is the authority on whether the deleted entry was
// unread.
func (p *Poller) Delete(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/notifications/%d", p.baseURL, id)
	return httpclient.DoJSON(ctx, p.client, http.MethodDelete, url, nil, nil)
}
