package quotes

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pulgashop/envios-backend/internal/cart"
	"github.com/pulgashop/envios-backend/internal/mapping"
	"github.com/pulgashop/envios-backend/pkg/chilexpress"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
	"github.com/pulgashop/envios-backend/pkg/metrics"
)

// State names the phases a quote workflow moves through.
type State string

const (
	StateIdle        State = "idle"
	StateValidating  State = "validating"
	StateQuoting     State = "quoting"
	StateQuoted      State = "quoted"
	StateQuoteFailed State = "quote_failed"
)

// Quoter is the carrier rating surface the workflow depends on.
type Quoter interface {
	Quote(ctx context.Context, req chilexpress.QuoteRequest) ([]chilexpress.QuoteOption, error)
}

// Input is one quote request as issued by the checkout flow.
type Input struct {
	DestinationCountyCode string
	Items                 []cart.Item
	Overrides             mapping.QuoteOverrides
}

// Snapshot is a point-in-time copy of the workflow state, safe to render.
type Snapshot struct {
	State          State
	Options        []chilexpress.QuoteOption
	SelectedCode   string
	FailureMessage string
}

// Workflow drives a single checkout's quoting lifecycle. Overlapping
// requests are resolved last-issued-wins: a response belonging to a
// superseded request is discarded without touching the state.
type Workflow struct {
	quoter   Quoter
	origin   string
	defaults cart.Defaults
	shipm    *metrics.ShippingMetrics
	logg     *logger.Logger

	mu       sync.Mutex
	seq      uint64
	state    State
	options  []chilexpress.QuoteOption
	selected string
	failure  string
}

// NewWorkflow constructs a workflow quoting from the given origin county.
func NewWorkflow(quoter Quoter, originCounty string, defaults cart.Defaults, shipm *metrics.ShippingMetrics, logg *logger.Logger) *Workflow {
	if quoter == nil {
		panic("quotes: nil quoter")
	}
	if logg == nil {
		panic("quotes: nil logger")
	}
	return &Workflow{
		quoter:   quoter,
		origin:   originCounty,
		defaults: defaults,
		shipm:    shipm,
		logg:     logg,
		state:    StateIdle,
	}
}

// Request validates the input, clears any previous result and issues a
// carrier quote. A request rejected during validation leaves the previous
// result untouched: the caller can fix the input while the last quoted
// options stay selectable. It returns the snapshot the caller should
// render; when a newer request supersedes this one mid-flight, the
// returned snapshot reflects the workflow as the newer request left it.
func (w *Workflow) Request(ctx context.Context, input Input) (Snapshot, error) {
	w.mu.Lock()
	prev := w.state
	w.state = StateValidating
	w.mu.Unlock()

	req, err := w.buildRequest(input)
	if err != nil {
		w.mu.Lock()
		if w.state == StateValidating {
			w.state = prev
		}
		snap := w.snapshotLocked()
		w.mu.Unlock()
		return snap, err
	}

	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.state = StateQuoting
	w.options = nil
	w.selected = ""
	w.failure = ""
	w.mu.Unlock()

	started := time.Now()
	options, quoteErr := w.quoter.Quote(ctx, req)
	elapsed := time.Since(started)

	w.mu.Lock()
	defer w.mu.Unlock()

	if seq != w.seq {
		// Superseded while in flight; the newer request owns the state.
		w.logg.Info(ctx, "discarding stale quote response")
		w.shipm.ObserveQuote("stale", elapsed)
		return w.snapshotLocked(), nil
	}

	if quoteErr != nil {
		w.state = StateQuoteFailed
		w.failure = quoteErr.Error()
		w.shipm.ObserveQuote("error", elapsed)
		w.logg.Error(ctx, "carrier quote failed", quoteErr)
		return w.snapshotLocked(), pkgerrors.Wrap(pkgerrors.CodeDependency, quoteErr, "requesting carrier quote")
	}

	// An empty option list is a successful quote with nothing to offer,
	// not a failure.
	w.state = StateQuoted
	w.options = options
	w.shipm.ObserveQuote("success", elapsed)
	return w.snapshotLocked(), nil
}

// Select records the chosen service. An unmatched code resets the selection
// to empty instead of keeping a stale choice.
func (w *Workflow) Select(code string) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selected = ""
	for _, opt := range w.options {
		if opt.ServiceCode == code {
			w.selected = code
			break
		}
	}
	return w.snapshotLocked()
}

// Selected returns the currently chosen option, if any.
func (w *Workflow) Selected() (chilexpress.QuoteOption, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, opt := range w.options {
		if opt.ServiceCode == w.selected && w.selected != "" {
			return opt, true
		}
	}
	return chilexpress.QuoteOption{}, false
}

// Reset returns the workflow to idle, dropping options and selection.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	w.state = StateIdle
	w.options = nil
	w.selected = ""
	w.failure = ""
}

// Snapshot copies the current state for rendering.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workflow) snapshotLocked() Snapshot {
	options := make([]chilexpress.QuoteOption, len(w.options))
	copy(options, w.options)
	return Snapshot{
		State:          w.state,
		Options:        options,
		SelectedCode:   w.selected,
		FailureMessage: w.failure,
	}
}

func (w *Workflow) buildRequest(input Input) (chilexpress.QuoteRequest, error) {
	if strings.TrimSpace(input.DestinationCountyCode) == "" {
		return chilexpress.QuoteRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "destination county code is required")
	}
	profile, err := cart.BuildProfile(input.Items, w.defaults)
	if err != nil {
		return chilexpress.QuoteRequest{}, err
	}
	if err := profile.Validate(); err != nil {
		return chilexpress.QuoteRequest{}, err
	}
	return mapping.QuoteRequest(w.origin, strings.TrimSpace(input.DestinationCountyCode), profile, input.Overrides), nil
}
