package listing

import (
	"context"
	"log"
	"sync"

	"jobpilot-client/internal/api"
	"jobpilot-client/internal/notify"
)

type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

// Result is the whole fetch outcome for the current query, replaced wholesale
// on every resolution. Fetched holds the raw page length before client-side
// refinement; pagination works off it and the server total.
type Result struct {
	Items   []api.JobSummary
	Total   int
	Fetched int
	State   LoadState
	Err     error
}

// Backend is the slice of the API client the controller needs.
type Backend interface {
	Jobs(ctx context.Context, p api.JobsParams) (api.JobPage, error)
	TriggerScrape(ctx context.Context, region, role string) error
}

// Controller keeps one listing view in sync with the backend. Every query
// change dispatches a fetch stamped with a sequence number; a resolving fetch
// commits only if its stamp is still the newest, so responses to superseded
// queries are discarded no matter when they arrive.
type Controller struct {
	mu       sync.Mutex
	backend  Backend
	hub      *notify.Hub
	pageSize int

	seq      uint64
	query    Query
	res      Result
	watchers map[chan struct{}]struct{}
}

func NewController(backend Backend, hub *notify.Hub, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Controller{
		backend:  backend,
		hub:      hub,
		pageSize: pageSize,
		watchers: make(map[chan struct{}]struct{}),
	}
}

// Updates delivers a tick after every committed state change. Buffered and
// lossy: a view that missed a tick still reads the freshest snapshot.
func (c *Controller) Updates() chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()
	return ch
}

func (c *Controller) Done(ch chan struct{}) {
	c.mu.Lock()
	delete(c.watchers, ch)
	c.mu.Unlock()
	close(ch)
}

func (c *Controller) notifyWatchers() {
	for ch := range c.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Controller) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Controller) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.res
}

// HasNext reports whether a further page exists behind the current result.
// A short page means the end of the listing.
func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.res.State != StateLoaded {
		return false
	}
	skip := (c.query.Page - 1) * c.pageSize
	return skip+c.res.Fetched < c.res.Total
}

// SetQuery replaces the query and dispatches a fetch for it.
func (c *Controller) SetQuery(ctx context.Context, q Query) {
	q = q.normalized()

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.query = q
	c.res.State = StateLoading
	c.res.Err = nil
	c.notifyWatchers()
	c.mu.Unlock()

	go c.fetch(ctx, q, seq)
}

// Reload re-issues the current query.
func (c *Controller) Reload(ctx context.Context) {
	c.SetQuery(ctx, c.Query())
}

// ScrapeAndReload triggers a backend scraping run, then reloads the listing.
// A failed trigger degrades to a warning; the reload of existing data still
// happens.
func (c *Controller) ScrapeAndReload(ctx context.Context, region, role string) {
	if err := c.backend.TriggerScrape(ctx, region, role); err != nil {
		log.Printf("[listing] scrape trigger: %v", err)
		c.hub.Warnf("Could not start a scrape; showing existing jobs")
	} else {
		c.hub.Successf("Scrape started")
	}
	c.Reload(ctx)
}

func (c *Controller) fetch(ctx context.Context, q Query, seq uint64) {
	page, err := c.backend.Jobs(ctx, q.params(c.pageSize))

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		log.Printf("[listing] discarding stale response seq=%d latest=%d", seq, c.seq)
		return
	}

	if err != nil {
		// Clear to empty on error; the view shows the failure instead of a
		// list that no longer matches the query.
		c.res = Result{State: StateFailed, Err: err}
		c.notifyWatchers()
		c.hub.Warnf("Failed to load jobs")
		return
	}

	c.res = Result{
		Items:   refine(q, page.Items),
		Total:   page.Total,
		Fetched: len(page.Items),
		State:   StateLoaded,
	}
	c.notifyWatchers()
}
