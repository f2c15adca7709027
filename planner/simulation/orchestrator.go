// Package simulation drives the asynchronous job lifecycle for long-running
// Monte Carlo runs: bounded status polling, orchestrator-redirect chasing,
// and resumable timeout delivery.
package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

// One tool call owns one bounded polling window: 15 checks 2 seconds apart,
// about 30 seconds of wall time before handing back a resumable identifier.
const (
	defaultAttempts      = 15
	defaultPollInterval  = 2 * time.Second
	defaultRedirectPause = 1 * time.Second
)

var ErrEmptyJobID = errors.New("job id is empty")

type state int

const (
	statePolling state = iota
	stateRedirecting
	stateSuccess
	stateFailure
	stateExhausted
)

func (s state) terminal() bool {
	return s == stateSuccess || s == stateFailure || s == stateExhausted
}

// Outcome is the terminal result of one polling window. JobID always holds
// the identifier the orchestrator was tracking last, so a PROCESSING outcome
// can be resumed with redirects intact.
type Outcome struct {
	Status string // SUCCESS, FAILURE, or PROCESSING
	JobID  string
	Result json.RawMessage // final body on SUCCESS, backend failure body on FAILURE
}

// Option customizes an Orchestrator. Tests shrink the intervals to zero.
type Option func(*Orchestrator)

func WithAttempts(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.attempts = n
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.pollInterval = d
		}
	}
}

func WithRedirectPause(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.redirectPause = d
		}
	}
}

type Orchestrator struct {
	backend       contractx.SimulationBackend
	attempts      int
	pollInterval  time.Duration
	redirectPause time.Duration
	sleep         func(time.Duration)
}

func New(backend contractx.SimulationBackend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:       backend,
		attempts:      defaultAttempts,
		pollInterval:  defaultPollInterval,
		redirectPause: defaultRedirectPause,
		sleep:         time.Sleep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Await runs the polling state machine for one job. Each attempt is one
// status check; a redirect spends the attempt it was discovered on and the
// chain shares the overall budget with ordinary polling, so a pathological
// backend can burn the whole window on redirects. That matches the observed
// backend behavior; the budget is the only bound.
//
// Transport errors abort immediately. They are never reported as
// still-processing.
func (o *Orchestrator) Await(ctx context.Context, apiKey, jobID string) (Outcome, error) {
	if jobID == "" {
		return Outcome{}, ErrEmptyJobID
	}

	st := statePolling
	var body json.RawMessage

	for attempt := 0; attempt < o.attempts && !st.terminal(); attempt++ {
		if st == stateRedirecting {
			o.sleep(o.redirectPause)
			st = statePolling
		}

		status, err := o.backend.SimulationStatus(ctx, apiKey, jobID)
		if err != nil {
			return Outcome{}, fmt.Errorf("poll status for job=%s: %w", jobID, err)
		}

		switch status.Status {
		case contractx.StatusSuccess:
			res, err := o.backend.SimulationResult(ctx, apiKey, jobID)
			if err != nil {
				return Outcome{}, fmt.Errorf("fetch result for job=%s: %w", jobID, err)
			}
			if res.Redirected() {
				log.Debug().
					Str("job_id", jobID).
					Str("result_id", res.ResultID).
					Msg("orchestrator redirect, switching job identifier")
				jobID = res.ResultID
				st = stateRedirecting
				continue
			}
			st, body = stateSuccess, res.Raw

		case contractx.StatusFailure:
			st, body = stateFailure, status.Raw

		default:
			// Anything else means still running.
			o.sleep(o.pollInterval)
		}
	}

	if !st.terminal() {
		st = stateExhausted
	}

	switch st {
	case stateSuccess:
		return Outcome{Status: contractx.StatusSuccess, JobID: jobID, Result: body}, nil
	case stateFailure:
		return Outcome{Status: contractx.StatusFailure, JobID: jobID, Result: body}, nil
	default:
		return Outcome{Status: contractx.StatusProcessing, JobID: jobID}, nil
	}
}
