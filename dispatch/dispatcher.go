package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/FrenchMajesty/turbo-kit/config"
	"github.com/FrenchMajesty/turbo-kit/utils/logger"
	"github.com/FrenchMajesty/turbo-kit/utils/parallel"
	"github.com/FrenchMajesty/turbo-kit/utils/retry"
	"github.com/FrenchMajesty/turbo-kit/utils/weighted"
	"github.com/google/uuid"
)

// ErrNoUpstream is reported when the sampler selects nothing, which happens
// with the binary strategy when every weight is zero.
var ErrNoUpstream = errors.New("no upstream could be selected")

// Options configures a Dispatcher.
type Options struct {
	Upstreams   []Upstream
	Strategy    string
	Concurrency int
	Retry       retry.Config
	// Sampler defaults to a crypto/rand backed sampler.
	Sampler *weighted.Sampler
	Caller  Caller
	Logger  logger.Logger
}

// Outcome is the result of one dispatched request.
type Outcome struct {
	RequestID     string
	Upstream      string
	// UpstreamIndex is the position of Upstream in Options.Upstreams, or -1
	// when the request was not routed.
	UpstreamIndex int
	Attempts      int
	Response      Response
	Err           error
}

// Dispatcher routes requests to weighted upstreams with retries.
// It is safe for concurrent use.
type Dispatcher struct {
	upstreams   []Upstream
	indices     []int
	weights     []float64
	strategy    string
	concurrency int
	retry       retry.Config
	sampler     *weighted.Sampler
	caller      Caller
	log         logger.Logger
}

// New validates opts and builds a Dispatcher.
func New(opts Options) (*Dispatcher, error) {
	if len(opts.Upstreams) == 0 {
		return nil, errors.New("dispatch: at least one upstream is required")
	}
	if opts.Caller == nil {
		return nil, errors.New("dispatch: caller is required")
	}
	switch opts.Strategy {
	case config.StrategyLinear, config.StrategyBinary:
	case "":
		opts.Strategy = config.StrategyLinear
	default:
		return nil, fmt.Errorf("dispatch: unknown strategy %q", opts.Strategy)
	}
	if err := opts.Retry.Validate(); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	if opts.Sampler == nil {
		opts.Sampler = weighted.NewSampler()
	}

	indices := make([]int, len(opts.Upstreams))
	weights := make([]float64, len(opts.Upstreams))
	for i, u := range opts.Upstreams {
		indices[i] = i
		weights[i] = u.Weight
	}

	return &Dispatcher{
		upstreams:   opts.Upstreams,
		indices:     indices,
		weights:     weights,
		strategy:    opts.Strategy,
		concurrency: opts.Concurrency,
		retry:       opts.Retry,
		sampler:     opts.Sampler,
		caller:      opts.Caller,
		log:         opts.Logger,
	}, nil
}

// FromConfig builds a Dispatcher whose upstreams are served by a SimulatedCaller.
func FromConfig(cfg *config.Config, log logger.Logger) (*Dispatcher, error) {
	sampler := weighted.NewSampler()

	upstreams := make([]Upstream, len(cfg.Dispatch.Upstreams))
	for i, u := range cfg.Dispatch.Upstreams {
		upstreams[i] = Upstream{Name: u.Name, Weight: u.Weight, Down: u.Down}
	}

	return New(Options{
		Upstreams:   upstreams,
		Strategy:    cfg.Dispatch.Strategy,
		Concurrency: cfg.Dispatch.Concurrency,
		Retry:       cfg.Retry,
		Sampler:     sampler,
		Caller:      NewSimulatedCaller(sampler, cfg.Dispatch.FailureRate),
		Logger:      log,
	})
}

// Probabilities returns each upstream's selection chance in percent, in
// configuration order.
func (d *Dispatcher) Probabilities() []weighted.Probability[Upstream] {
	combined := weighted.ComputeCombinedProbabilities(d.upstreams, d.weights)
	out := make([]weighted.Probability[Upstream], 0, len(combined))
	for i := range d.upstreams {
		if p, ok := combined[i]; ok {
			out = append(out, p)
		}
	}
	return out
}

// pick samples an upstream position so that upstreams sharing a name stay
// distinguishable.
func (d *Dispatcher) pick() (int, bool) {
	if d.strategy == config.StrategyBinary {
		return weighted.SampleBinarySearch(d.sampler, d.indices, d.weights)
	}
	return weighted.SampleLinear(d.sampler, d.indices, d.weights)
}

// Dispatch routes a single request. Errors are reported in the Outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, requestID string) Outcome {
	outcome := Outcome{RequestID: requestID, UpstreamIndex: -1}

	index, ok := d.pick()
	if !ok {
		outcome.Err = ErrNoUpstream
		logger.Warn(d.log, "dispatch: no upstream selected", map[string]any{"request_id": requestID})
		return outcome
	}
	upstream := d.upstreams[index]
	outcome.Upstream = upstream.Name
	outcome.UpstreamIndex = index

	opts := retry.Options{
		Config:    d.retry,
		Retryable: retry.IsAny(ErrUpstreamUnavailable),
		Logger:    d.log,
		Name:      "dispatch:" + upstream.Name,
	}

	outcome.Response, outcome.Err = retry.Execute(ctx, opts, func(attempt int) (Response, error) {
		outcome.Attempts = attempt
		return d.caller.Call(ctx, upstream, requestID, attempt)
	})

	if outcome.Err != nil {
		logger.Warn(d.log, "dispatch: request failed", map[string]any{
			"request_id": requestID,
			"upstream":   upstream.Name,
			"attempts":   outcome.Attempts,
			"error":      outcome.Err.Error(),
		})
	}
	return outcome
}

// Run dispatches n requests in parallel, at most Concurrency at a time, and
// summarises the outcomes.
func (d *Dispatcher) Run(ctx context.Context, n int) Report {
	builder := parallel.NewBuilder().WithLimit(d.concurrency)
	for i := 0; i < n; i++ {
		requestID := uuid.NewString()
		builder.Add(requestID, func(ctx context.Context) (any, error) {
			return d.Dispatch(ctx, requestID), nil
		})
	}

	results := builder.Run(ctx)

	report := newReport(d.upstreams, weighted.ComputeProbabilities(d.weights))
	for requestID := range results {
		outcome, err := parallel.Value[Outcome](results, requestID)
		if err != nil {
			outcome = Outcome{RequestID: requestID, UpstreamIndex: -1, Err: err}
		}
		report.add(outcome)
	}

	logger.Info(d.log, "dispatch: run complete", map[string]any{
		"requests":  report.Requests,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"strategy":  d.strategy,
	})
	return report
}
