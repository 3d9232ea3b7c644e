package router

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/logger"
)

const (
	MethodNotAllowedBody = "Method not Allowed"
	NotFoundBody         = "Not found"
)

// An Outcome is the result of resolving a request against a Table.
type Outcome int

const (
	Dispatched Outcome = iota
	NotFound
	MethodNotAllowed
)

func (o Outcome) String() string {
	switch o {
	case Dispatched:
		return "dispatched"
	case NotFound:
		return "not found"
	case MethodNotAllowed:
		return "method not allowed"
	default:
		return "unknown"
	}
}

// A State is where a request ended up after a Dispatcher handled it.
type State int

const (
	// Unresolved requests never reached a handler: their Outcome is NotFound or MethodNotAllowed.
	Unresolved State = iota
	Succeeded
	Exempted
	Failed
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Succeeded:
		return "succeeded"
	case Exempted:
		return "exempted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// An ExemptionHandler receives every handler failure when registered.
// It may change anything about w; whatever it leaves is the response.
type ExemptionHandler func(r *req.Request, w *resp.Response, err error)

// A Dispatcher resolves requests against a Table and invokes the matching handler.
type Dispatcher struct {
	table  *Table
	exempt atomic.Pointer[ExemptionHandler]
	l      logger.Logger
}

// A DispatcherOptFn configures a *Dispatcher when constructing it.
type DispatcherOptFn func(*Dispatcher)

// WithExemptionHandler sets the ExemptionHandler handler failures are passed to.
func WithExemptionHandler(h ExemptionHandler) DispatcherOptFn {
	return func(d *Dispatcher) {
		d.SetExemptionHandler(h)
	}
}

// WithLogger sets the logger.Logger exempted failures are reported to.
func WithLogger(l logger.Logger) DispatcherOptFn {
	return func(d *Dispatcher) {
		d.l = l
	}
}

// NewDispatcher constructs a *Dispatcher over t.
func NewDispatcher(t *Table, opts ...DispatcherOptFn) *Dispatcher {
	d := &Dispatcher{table: t, l: logger.NewNoopLogger()}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// SetExemptionHandler replaces the ExemptionHandler; nil removes it.
// It is safe to call while requests are being dispatched.
func (d *Dispatcher) SetExemptionHandler(h ExemptionHandler) {
	if h == nil {
		d.exempt.Store(nil)
		return
	}

	d.exempt.Store(&h)
}

// Table returns the Table the Dispatcher resolves against.
func (d *Dispatcher) Table() *Table { return d.table }

// Resolve finds the operation r should be dispatched to without invoking it.
//
// The HandlerFunc and Params are only set when the Outcome is Dispatched.
func (d *Dispatcher) Resolve(r *req.Request) (HandlerFunc, Params, Outcome) {
	_, h, params, outcome := d.resolve(r)
	return h, params, outcome
}

// Dispatch produces the Response for r.
//
// Unmatched paths get 404 "Not found"
// and disallowed methods get 405 "Method not Allowed";
// neither is an error.
// A handler failure is passed to the ExemptionHandler if one is set
// and returned wrapped in ErrHandlerFailure otherwise.
func (d *Dispatcher) Dispatch(r *req.Request) (*resp.Response, error) {
	w, _, _, err := d.DispatchState(r)
	return w, err
}

// DispatchState is Dispatch also reporting the Outcome and State the request ended in.
func (d *Dispatcher) DispatchState(r *req.Request) (*resp.Response, Outcome, State, error) {
	d.table.Seal()

	w := resp.New()
	rt, h, params, outcome := d.resolve(r)
	switch outcome {
	case NotFound:
		w.SetCode(http.StatusNotFound)
		w.SetText(NotFoundBody)
		return w, outcome, Unresolved, nil

	case MethodNotAllowed:
		w.SetCode(http.StatusMethodNotAllowed)
		w.SetText(MethodNotAllowedBody)
		return w, outcome, Unresolved, nil
	}

	r.SetParams(params)
	err := invoke(h, r, w)
	if err == nil {
		return w, outcome, Succeeded, nil
	}

	exempt := d.exempt.Load()
	if exempt == nil {
		return nil, outcome, Failed, fmt.Errorf("%w: %s %s: %w", ErrHandlerFailure, r.Method(), rt.pattern, err)
	}

	d.l.Warn(fmt.Sprintf("exempting handler failure for %s %s", r.Method(), rt.pattern), &logger.LogContext{
		Error:   err,
		Request: r.Raw(),
	})
	(*exempt)(r, w, err)

	return w, outcome, Exempted, nil
}

func (d *Dispatcher) resolve(r *req.Request) (*Route, HandlerFunc, Params, Outcome) {
	rt, params, ok := d.table.Lookup(r.Path())
	if !ok {
		return nil, nil, nil, NotFound
	}

	h, ok := rt.Resolve(r.Method())
	if !ok {
		return rt, nil, nil, MethodNotAllowed
	}

	return rt, h, params, Dispatched
}

// invoke calls h, converting a panic into a *PanicError.
func invoke(h HandlerFunc, r *req.Request, w *resp.Response) (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}

		// NOTE(dlk): net/http relies on this panic to abort a response; let it through.
		if e, ok := v.(error); ok && errors.Is(e, http.ErrAbortHandler) {
			panic(v)
		}

		err = newPanicError(v)
	}()

	return h(r, w)
}
