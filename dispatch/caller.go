package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/FrenchMajesty/turbo-kit/utils/weighted"
)

var (
	// ErrUpstreamUnavailable is a transient failure worth retrying.
	ErrUpstreamUnavailable = errors.New("upstream temporarily unavailable")
	// ErrUpstreamDown is a permanent failure; retrying cannot help.
	ErrUpstreamDown = errors.New("upstream is down")
)

// Upstream is a weighted destination for requests.
type Upstream struct {
	Name   string
	Weight float64
	Down   bool
}

// Response is what a successful call returns.
type Response struct {
	Upstream  string
	RequestID string
	Attempt   int
	Token     string
}

// Caller performs one call against an upstream.
type Caller interface {
	Call(ctx context.Context, upstream Upstream, requestID string, attempt int) (Response, error)
}

// SimulatedCaller fails transiently with probability FailureRate and always
// fails for upstreams marked Down. Draws come from the shared Sampler.
type SimulatedCaller struct {
	sampler     *weighted.Sampler
	failureRate float64
}

var _ Caller = (*SimulatedCaller)(nil)

func NewSimulatedCaller(sampler *weighted.Sampler, failureRate float64) *SimulatedCaller {
	return &SimulatedCaller{sampler: sampler, failureRate: failureRate}
}

func (c *SimulatedCaller) Call(ctx context.Context, upstream Upstream, requestID string, attempt int) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if upstream.Down {
		return Response{}, fmt.Errorf("%s: %w", upstream.Name, ErrUpstreamDown)
	}

	failed, _ := weighted.SampleLinear(c.sampler, []bool{true, false}, []float64{c.failureRate, 1 - c.failureRate})
	if failed {
		return Response{}, fmt.Errorf("%s: %w", upstream.Name, ErrUpstreamUnavailable)
	}

	return Response{
		Upstream:  upstream.Name,
		RequestID: requestID,
		Attempt:   attempt,
		Token:     c.sampler.RandomString(16, ""),
	}, nil
}
