package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/bruschetta/internal/domain"
)

const defaultRequestTimeout = 30 * time.Second

// SearchStatus is the lifecycle of the current query
type SearchStatus int

const (
	StatusIdle SearchStatus = iota
	StatusSearching
	StatusReady
	StatusFailed
)

func (s SearchStatus) String() string {
	switch s {
	case StatusSearching:
		return "searching"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SearchController runs the search fan-out: one primary request, then one
// review request per title, each merged into the store as it arrives.
//
// Search and Update must be called from a single goroutine (the event loop).
// The commands they return run elsewhere and only report back via messages.
type SearchController struct {
	search    domain.SearchClient
	reviews   domain.ReviewClient
	store     domain.ResultStore
	observer  domain.Observer
	logger    *slog.Logger
	threshold int
	timeout   time.Duration

	query      string
	generation uint64
	status     SearchStatus
	pending    map[string]struct{}
}

// ControllerOption configures a SearchController
type ControllerOption func(*SearchController)

// WithObserver sets the receiver of presentation events
func WithObserver(o domain.Observer) ControllerOption {
	return func(c *SearchController) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *SearchController) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFavorableThreshold sets the lowest score reported as favorable
func WithFavorableThreshold(threshold int) ControllerOption {
	return func(c *SearchController) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

// WithRequestTimeout bounds the primary search call. Review calls are
// bounded by the review client, which may queue them first.
func WithRequestTimeout(d time.Duration) ControllerOption {
	return func(c *SearchController) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewSearchController creates a controller writing into store
func NewSearchController(
	search domain.SearchClient,
	reviews domain.ReviewClient,
	store domain.ResultStore,
	opts ...ControllerOption,
) *SearchController {
	c := &SearchController{
		search:    search,
		reviews:   reviews,
		store:     store,
		observer:  domain.NopObserver{},
		logger:    slog.Default(),
		threshold: domain.DefaultFavorableThreshold,
		timeout:   defaultRequestTimeout,
		pending:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search starts a new query. A blank term is ignored and returns nil.
// Otherwise the store is cleared and the returned command performs the
// primary request; feed its message back through Update.
func (c *SearchController) Search(term string) tea.Cmd {
	query := strings.TrimSpace(term)
	if query == "" {
		return nil
	}

	c.generation++
	c.query = query
	c.status = StatusSearching
	c.pending = make(map[string]struct{})
	c.store.Reset()
	c.observer.SearchStarted(query)

	c.logger.Info("search started", "query", query, "generation", c.generation)

	gen := c.generation
	client := c.search
	timeout := c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		titles, err := client.Search(ctx, query)
		return SearchResultsMsg{Generation: gen, Query: query, Titles: titles, Err: err}
	}
}

// FetchReview returns a command that requests the review for t and reports
// a ReviewFetchedMsg tagged with generation.
func (c *SearchController) FetchReview(generation uint64, t domain.Title) tea.Cmd {
	client := c.reviews
	return func() tea.Msg {
		review, err := client.Review(context.Background(), t)
		return ReviewFetchedMsg{Generation: generation, Key: t.Key(), Review: review, Err: err}
	}
}

// Update applies a completed request. Messages from an earlier search are
// dropped without touching the store.
func (c *SearchController) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SearchResultsMsg:
		return c.handleSearchResults(msg)
	case ReviewFetchedMsg:
		c.handleReview(msg)
	}
	return nil
}

func (c *SearchController) handleSearchResults(msg SearchResultsMsg) tea.Cmd {
	if msg.Generation != c.generation {
		c.logger.Debug("discarding stale search results", "query", msg.Query, "generation", msg.Generation, "current", c.generation)
		return nil
	}

	if msg.Err != nil {
		c.status = StatusFailed
		c.logger.Error("search failed", "query", msg.Query, "error", msg.Err)
		c.observer.SearchFailed(msg.Err.Error())
		return nil
	}

	seeded := c.store.Seed(msg.Titles)
	c.logger.Debug("search results seeded", "query", msg.Query, "results", len(msg.Titles), "seeded", len(seeded))

	cmds := make([]tea.Cmd, 0, len(seeded))
	for _, e := range seeded {
		key := e.Key()
		c.pending[key] = struct{}{}
		c.observer.ItemSeeded(key, e.Title)
		cmds = append(cmds, c.FetchReview(c.generation, e.Title))
	}

	if len(c.pending) == 0 {
		c.settle()
		return nil
	}
	return tea.Batch(cmds...)
}

func (c *SearchController) handleReview(msg ReviewFetchedMsg) {
	if msg.Generation != c.generation {
		c.logger.Debug("discarding stale review", "key", msg.Key, "generation", msg.Generation, "current", c.generation)
		return
	}
	if _, ok := c.pending[msg.Key]; !ok {
		c.logger.Debug("ignoring review for item that is not pending", "key", msg.Key)
		return
	}
	delete(c.pending, msg.Key)

	switch score, ok := msg.Review.UsableScore(); {
	case msg.Err != nil:
		c.logger.Warn("review fetch failed", "key", msg.Key, "error", msg.Err)
		if c.store.MarkUnavailable(msg.Key, "fetch failed: "+msg.Err.Error()) {
			c.observer.ItemRatingUnavailable(msg.Key)
		}
	case ok:
		if c.store.MarkAvailable(msg.Key, msg.Review) {
			c.observer.ItemRatingAvailable(msg.Key, score, domain.BandFor(score, c.threshold))
		}
	default:
		c.logger.Debug("review has no usable score", "key", msg.Key)
		if c.store.MarkUnavailable(msg.Key, "no score") {
			c.observer.ItemRatingUnavailable(msg.Key)
		}
	}

	if len(c.pending) == 0 {
		c.settle()
	}
}

func (c *SearchController) settle() {
	c.status = StatusReady
	c.logger.Info("search settled", "query", c.query, "results", c.store.Len())
	c.observer.SearchSettled(c.query)
}

// State returns the rating state of key. Unknown keys are pending.
func (c *SearchController) State(key string) domain.RatingState {
	e, ok := c.store.Get(key)
	if !ok {
		return domain.RatingPending
	}
	return e.State
}

// HasReview reports whether key has a usable review
func (c *SearchController) HasReview(key string) bool {
	return c.State(key) == domain.RatingAvailable
}

// Review returns the merged review for key, if available
func (c *SearchController) Review(key string) (*domain.Review, bool) {
	e, ok := c.store.Get(key)
	if !ok || e.State != domain.RatingAvailable {
		return nil, false
	}
	return e.Review, true
}

// Entry returns the store entry for key
func (c *SearchController) Entry(key string) (domain.Entry, bool) {
	return c.store.Get(key)
}

// Entries returns every entry of the current search in response order
func (c *SearchController) Entries() []domain.Entry {
	return c.store.Entries()
}

// FormatRating renders the rating line for an entry using the controller's threshold
func (c *SearchController) FormatRating(e domain.Entry) string {
	return domain.FormatRating(e, c.threshold)
}

func (c *SearchController) Query() string        { return c.query }
func (c *SearchController) Generation() uint64   { return c.generation }
func (c *SearchController) Status() SearchStatus { return c.status }
func (c *SearchController) Pending() int         { return len(c.pending) }
func (c *SearchController) Threshold() int       { return c.threshold }
