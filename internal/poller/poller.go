// Package poller implements the client-side status polling contract: fetch
// the processing record for a document on a fixed cadence until a terminal
// state is observed or the transport-failure budget is exhausted.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Defaults for the polling contract.
const (
	DefaultInterval        = 2 * time.Second
	DefaultCompletionGrace = 1 * time.Second
	DefaultMaxRetries      = 3
)

// Generic messages surfaced when no specific one is available.
const (
	msgTransportFailure = "Failed to check processing status"
	msgProcessingFailed = "Failed to process document"
)

// Status is the processing snapshot returned by a fetch.
type Status struct {
	DocumentID   int          `json:"documentId"`
	Status       types.Status `json:"status"`
	Progress     int          `json:"progress"`
	ErrorMessage *string      `json:"errorMessage"`
}

// Fetcher retrieves the current processing status for a document.
type Fetcher interface {
	FetchStatus(ctx context.Context, documentID int) (*Status, error)
}

// Callbacks receive polling outcomes. Any callback may be nil. No callback
// fires after Stop returns.
type Callbacks struct {
	// OnUpdate is called with the fetched progress and status on every
	// successful fetch, unconditionally.
	OnUpdate func(progress int, status types.Status)
	// OnComplete is called once, a grace delay after a completed status was
	// observed.
	OnComplete func()
	// OnFailure is called once with a display message when polling ends in
	// failure.
	OnFailure func(message string)
}

// Options tune the polling loop. Zero values select the defaults.
type Options struct {
	Interval        time.Duration
	CompletionGrace time.Duration
	MaxRetries      int
}

// Poller drives the polling loop for one document.
type Poller struct {
	fetcher    Fetcher
	documentID int
	callbacks  Callbacks
	opts       Options

	mu      sync.Mutex
	stopped bool
	torn    bool // set only by Stop; suppresses late callbacks
	done    chan struct{}
}

// New creates a Poller for the given document.
func New(fetcher Fetcher, documentID int, callbacks Callbacks, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.CompletionGrace <= 0 {
		opts.CompletionGrace = DefaultCompletionGrace
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	return &Poller{
		fetcher:    fetcher,
		documentID: documentID,
		callbacks:  callbacks,
		opts:       opts,
		done:       make(chan struct{}),
	}
}

// Start begins polling: one immediate fetch, then one per interval. It
// returns immediately; callbacks fire from a background goroutine.
func (p *Poller) Start(ctx context.Context) {
	go p.loop(ctx)
}

// Stop tears the poller down. Idempotent. After Stop returns no further
// fetches are issued and no callbacks fire.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.torn = true
	p.halt()
}

// Done is closed when the polling loop has ended, whether by terminal status,
// exhausted retries, or Stop.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// halt marks the poller stopped. Callers must hold p.mu.
func (p *Poller) halt() {
	if !p.stopped {
		p.stopped = true
		close(p.done)
	}
}

func (p *Poller) loop(ctx context.Context) {
	retries := 0

	if p.check(ctx, &retries) {
		return
	}

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ctx.Done():
			p.Stop()
			return
		case <-ticker.C:
			if p.check(ctx, &retries) {
				return
			}
		}
	}
}

// check performs one status fetch and dispatches callbacks. It returns true
// when polling should stop.
func (p *Poller) check(ctx context.Context, retries *int) bool {
	status, err := p.fetcher.FetchStatus(ctx, p.documentID)
	if err != nil {
		*retries++
		if *retries >= p.opts.MaxRetries {
			p.finishFailed(msgTransportFailure)
			return true
		}
		return false
	}

	p.emitUpdate(status.Progress, status.Status)

	// A recorded error message is terminal regardless of the status value.
	if status.ErrorMessage != nil && *status.ErrorMessage != "" {
		*retries = 0
		p.finishFailed(*status.ErrorMessage)
		return true
	}

	if status.Status == types.StatusCompleted {
		*retries = 0
		p.finishCompleted()
		return true
	}

	if status.Status == types.StatusFailed {
		*retries = 0
		p.finishFailed(msgProcessingFailed)
		return true
	}

	// Note: the retry counter is deliberately not reset on a non-terminal
	// success; it only resets when a terminal condition is reached through
	// the success path.
	return false
}

// emitUpdate fires OnUpdate unless the poller was stopped.
func (p *Poller) emitUpdate(progress int, status types.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.callbacks.OnUpdate == nil {
		return
	}
	p.callbacks.OnUpdate(progress, status)
}

// finishCompleted stops polling and schedules OnComplete after the grace
// delay, letting a UI show its success state briefly before advancing.
func (p *Poller) finishCompleted() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	onComplete := p.callbacks.OnComplete
	p.halt()
	p.mu.Unlock()

	if onComplete == nil {
		return
	}
	time.Sleep(p.opts.CompletionGrace)

	p.mu.Lock()
	torn := p.torn
	p.mu.Unlock()
	if !torn {
		onComplete()
	}
}

// finishFailed stops polling and surfaces the failure message.
func (p *Poller) finishFailed(message string) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	onFailure := p.callbacks.OnFailure
	p.halt()
	p.mu.Unlock()

	if onFailure != nil {
		onFailure(message)
	}
}
