package wizard

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/mark3labs/chanforum/internal/logger"
)

// DefaultBoardsKey is the cache key invalidated after a forum is created.
const DefaultBoardsKey = "boards"

// Deps holds the collaborators a Controller drives.
type Deps struct {
	Search   Operation[string, []Candidate] // channel lookup by handle
	Create   Operation[string, struct{}]    // forum creation by candidate ID
	Notifier Notifier
	Cache    CacheInvalidator
	Flag     CreationFlag
	OnClose  func() // asks the host to close the wizard container
}

// Option configures a Controller.
type Option func(*Controller)

// WithStateObserver registers fn to receive a snapshot after every state change.
// Observers run on the goroutine that caused the change and must not call back
// into the Controller.
func WithStateObserver(fn func(State)) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// WithBoardsKey overrides the cache key invalidated on a successful create.
func WithBoardsKey(key string) Option {
	return func(c *Controller) {
		c.boardsKey = key
	}
}

// Controller sequences the two-step create-forum flow.
//
// All state lives behind mu. Every Reset bumps generation; completion handlers
// compare the generation captured when their operation was issued and drop
// their state mutations if the wizard has been reset since.
type Controller struct {
	mu           sync.Mutex
	state        State
	generation   uint64
	cancelSearch context.CancelFunc

	publishMu sync.Mutex
	observers []func(State)

	gate   Gate
	search *Runner[string, []Candidate]
	create *Runner[string, struct{}]

	deps      Deps
	boardsKey string
}

// New creates a Controller in its initial state.
func New(deps Deps, opts ...Option) *Controller {
	if deps.Search == nil {
		deps.Search = func(context.Context, string) ([]Candidate, error) {
			return nil, errors.New("search operation not configured")
		}
	}
	if deps.Create == nil {
		deps.Create = func(context.Context, string) (struct{}, error) {
			return struct{}{}, errors.New("create operation not configured")
		}
	}
	if deps.Notifier == nil {
		deps.Notifier = NotifierFunc(func(Notification) {})
	}
	if deps.Cache == nil {
		deps.Cache = noopCache{}
	}
	if deps.Flag == nil {
		deps.Flag = noopFlag{}
	}

	c := &Controller{
		state:     InitialState(),
		deps:      deps,
		boardsKey: DefaultBoardsKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.search = NewRunner("search", &c.gate, deps.Search)
	c.create = NewRunner("create", &c.gate, deps.Create).OnStart(func() {
		c.deps.Flag.Set(true)
	})
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SetSearchInput stores the raw handle text. No validation happens here.
func (c *Controller) SetSearchInput(text string) {
	c.mu.Lock()
	c.state.SearchInput = text
	c.mu.Unlock()
	c.publish()
}

// Advance validates the handle and runs the channel search, then moves to the
// selection step. It blocks until the search completes, so hosts call it from
// a background goroutine.
//
// A non-nil error means no search was issued: ErrWrongStep, ErrBusy or
// ErrValidation. Search failures are reported through the Notifier and the
// wizard still moves to the selection step with no candidates.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Step != StepSearch {
		c.mu.Unlock()
		return ErrWrongStep
	}
	if c.state.Loading || c.gate.Busy() {
		c.mu.Unlock()
		return ErrBusy
	}
	query := c.state.SearchInput
	if utf8.RuneCountInString(query) < MinSearchInputLen {
		c.mu.Unlock()
		logger.Debug("wizard: rejected search input %q", query)
		c.deps.Notifier.Notify(validationFailed())
		return ErrValidation
	}

	gen := c.generation
	runCtx, cancel := context.WithCancel(ctx)
	c.cancelSearch = cancel
	c.state.Loading = true
	c.mu.Unlock()
	defer cancel()
	c.publish()

	logger.Debug("wizard: searching channels for %q", query)
	out := c.search.Run(runCtx, query, func(o Outcome[[]Candidate]) {
		c.finishSearch(gen, o)
	})
	if out.Busy {
		c.clearLoading(gen)
		return ErrBusy
	}
	return nil
}

// finishSearch applies a completed search if the wizard was not reset meanwhile.
func (c *Controller) finishSearch(gen uint64, o Outcome[[]Candidate]) {
	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		logger.Debug("wizard: discarding stale search result")
		return
	}
	c.cancelSearch = nil
	c.state.Loading = false

	if o.Failure != nil && o.Failure.Kind == FailureCancelled {
		c.mu.Unlock()
		logger.Debug("wizard: search cancelled, staying on search step")
		c.publish()
		return
	}

	c.state.Step = StepSelect
	c.state.Progress = Progress(StepSelect)
	var failed *Notification
	if o.OK() {
		c.state.Candidates = FilterCandidates(o.Value)
		logger.Debug("wizard: %d of %d candidates admitted", len(c.state.Candidates), len(o.Value))
	} else {
		c.state.Candidates = []Candidate{}
		n := searchFailed(o.Failure)
		failed = &n
	}
	if _, ok := c.state.SelectedCandidate(); !ok {
		c.state.SelectedCandidateID = ""
	}
	c.mu.Unlock()

	c.publish()
	if failed != nil {
		c.deps.Notifier.Notify(*failed)
	}
}

// Retreat returns to the search step. It is allowed while an operation is in
// flight and keeps the candidates and the search input.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	if c.state.Step != StepSelect {
		c.mu.Unlock()
		return ErrWrongStep
	}
	c.state.Step = StepSearch
	c.state.Progress = Progress(StepSearch)
	c.mu.Unlock()
	c.publish()
	return nil
}

// SelectCandidate stores the candidate to submit. An empty id clears the selection.
func (c *Controller) SelectCandidate(id string) error {
	c.mu.Lock()
	if c.state.Step != StepSelect {
		c.mu.Unlock()
		return ErrWrongStep
	}
	if c.state.Loading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state.SelectedCandidateID = id
	c.mu.Unlock()
	c.publish()
	return nil
}

// Submit runs the create operation for the selected candidate. The process-wide
// creation flag is raised while the request is in flight. On completion the
// result is notified, the boards cache is invalidated on success, and the wizard
// resets. Submit blocks until the create operation completes.
//
// The create request is not cancelled by Reset: once submitted, its side effects
// always complete. A non-nil error means no request was issued.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Step != StepSelect {
		c.mu.Unlock()
		return ErrWrongStep
	}
	if c.state.Loading || c.gate.Busy() {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.state.HasSelection() {
		c.mu.Unlock()
		return ErrNoSelection
	}
	gen := c.generation
	id := c.state.SelectedCandidateID
	c.state.Loading = true
	c.mu.Unlock()
	c.publish()

	logger.Info("wizard: creating forum for channel %s", id)
	out := c.create.Run(context.WithoutCancel(ctx), id, func(o Outcome[struct{}]) {
		c.finishCreate(gen, o)
	})
	if out.Busy {
		c.clearLoading(gen)
		return ErrBusy
	}
	return nil
}

// finishCreate performs the post-submission side effects.
func (c *Controller) finishCreate(gen uint64, o Outcome[struct{}]) {
	c.deps.Flag.Set(false)

	if o.OK() {
		c.deps.Notifier.Notify(createSucceeded())
		c.deps.Cache.InvalidateCachedCollection(c.boardsKey)
	} else {
		c.deps.Notifier.Notify(createFailed(o.Failure))
	}

	c.mu.Lock()
	stale := c.generation != gen
	c.mu.Unlock()
	if stale {
		logger.Debug("wizard: create finished after reset, leaving current wizard untouched")
		return
	}
	c.Reset()
}

// Reset restores the initial state, cancels a pending search and asks the host
// to close the wizard. It is idempotent.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.generation++
	cancel := c.cancelSearch
	c.cancelSearch = nil
	c.state = InitialState()
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.publish()
	if c.deps.OnClose != nil {
		c.deps.OnClose()
	}
}

// clearLoading undoes the provisional loading flag of a call rejected as busy.
func (c *Controller) clearLoading(gen uint64) {
	c.mu.Lock()
	if c.generation == gen {
		c.state.Loading = false
	}
	c.mu.Unlock()
	c.publish()
}

// publish delivers the latest snapshot to observers. publishMu keeps deliveries
// ordered so the last snapshot an observer sees is the current state.
func (c *Controller) publish() {
	if len(c.observers) == 0 {
		return
	}
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	snap := c.State()
	for _, fn := range c.observers {
		fn(snap)
	}
}

type noopCache struct{}

func (noopCache) InvalidateCachedCollection(string) {}

type noopFlag struct{}

func (noopFlag) Set(bool) {}
