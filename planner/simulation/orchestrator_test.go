package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

// fakeBackend scripts status and result responses per job identifier,
// consuming each job's list in order and recording every call.
type fakeBackend struct {
	statuses map[string][]contractx.SimulationStatus
	results  map[string][]contractx.SimulationResult

	statusCalls []string
	resultCalls []string

	statusErr error
	resultErr error
}

func (f *fakeBackend) SimulationStatus(ctx context.Context, apiKey, jobID string) (contractx.SimulationStatus, error) {
	f.statusCalls = append(f.statusCalls, jobID)
	if f.statusErr != nil {
		return contractx.SimulationStatus{}, f.statusErr
	}
	queue := f.statuses[jobID]
	if len(queue) == 0 {
		return contractx.SimulationStatus{}, fmt.Errorf("no scripted status for job=%s", jobID)
	}
	next := queue[0]
	if len(queue) > 1 {
		f.statuses[jobID] = queue[1:]
	}
	return next, nil
}

func (f *fakeBackend) SimulationResult(ctx context.Context, apiKey, jobID string) (contractx.SimulationResult, error) {
	f.resultCalls = append(f.resultCalls, jobID)
	if f.resultErr != nil {
		return contractx.SimulationResult{}, f.resultErr
	}
	queue := f.results[jobID]
	if len(queue) == 0 {
		return contractx.SimulationResult{}, fmt.Errorf("no scripted result for job=%s", jobID)
	}
	next := queue[0]
	if len(queue) > 1 {
		f.results[jobID] = queue[1:]
	}
	return next, nil
}

func running() contractx.SimulationStatus {
	return contractx.SimulationStatus{Status: "PROCESSING", Raw: json.RawMessage(`{"status":"PROCESSING"}`)}
}

func succeeded() contractx.SimulationStatus {
	return contractx.SimulationStatus{Status: "SUCCESS", Raw: json.RawMessage(`{"status":"SUCCESS"}`)}
}

func newFastOrchestrator(backend contractx.SimulationBackend, opts ...Option) *Orchestrator {
	base := []Option{WithPollInterval(0), WithRedirectPause(0)}
	return New(backend, append(base, opts...)...)
}

func TestPollsExactlyUntilSuccess(t *testing.T) {
	t.Parallel()

	const stillRunning = 3
	script := make([]contractx.SimulationStatus, 0, stillRunning+1)
	for i := 0; i < stillRunning; i++ {
		script = append(script, running())
	}
	script = append(script, succeeded())

	backend := &fakeBackend{
		statuses: map[string][]contractx.SimulationStatus{"job-1": script},
		results: map[string][]contractx.SimulationResult{
			"job-1": {{Raw: json.RawMessage(`{"success_rate":0.9}`)}},
		},
	}

	out, err := newFastOrchestrator(backend).Await(context.Background(), "sk", "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != contractx.StatusSuccess {
		t.Fatalf("status = %q", out.Status)
	}
	if got := len(backend.statusCalls); got != stillRunning+1 {
		t.Fatalf("status checks = %d, want %d", got, stillRunning+1)
	}
	if len(backend.resultCalls) != 1 {
		t.Fatalf("result fetches = %d, want 1", len(backend.resultCalls))
	}
	if string(out.Result) != `{"success_rate":0.9}` {
		t.Fatalf("result body = %s", out.Result)
	}
}

func TestRedirectSwitchesIdentifier(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		statuses: map[string][]contractx.SimulationStatus{
			"job-1": {succeeded()},
			"job-2": {running(), succeeded()},
		},
		results: map[string][]contractx.SimulationResult{
			"job-1": {{Status: "Orchestrator started", ResultID: "job-2", Raw: json.RawMessage(`{"status":"Orchestrator started","result_id":"job-2"}`)}},
			"job-2": {{Raw: json.RawMessage(`{"percentile_50":4200}`)}},
		},
	}

	out, err := newFastOrchestrator(backend).Await(context.Background(), "sk", "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != contractx.StatusSuccess {
		t.Fatalf("status = %q", out.Status)
	}
	if out.JobID != "job-2" {
		t.Fatalf("job id = %q, want redirected job-2", out.JobID)
	}
	if string(out.Result) != `{"percentile_50":4200}` {
		t.Fatalf("data must come from the final body, got %s", out.Result)
	}

	// The original identifier is discarded once redirected.
	for i, id := range backend.statusCalls {
		if i > 0 && id == "job-1" {
			t.Fatalf("revisited original identifier at call %d: %v", i, backend.statusCalls)
		}
	}
}

func TestBudgetExhaustionReturnsProcessing(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		statuses: map[string][]contractx.SimulationStatus{"job-1": {running()}},
	}

	out, err := newFastOrchestrator(backend, WithAttempts(15)).Await(context.Background(), "sk", "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != contractx.StatusProcessing {
		t.Fatalf("status = %q", out.Status)
	}
	if out.JobID != "job-1" {
		t.Fatalf("job id = %q", out.JobID)
	}
	if len(backend.statusCalls) != 15 {
		t.Fatalf("status checks = %d, want exactly 15", len(backend.statusCalls))
	}
}

func TestBudgetExhaustionKeepsRedirectedIdentifier(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		statuses: map[string][]contractx.SimulationStatus{
			"job-1": {succeeded()},
			"job-2": {running()},
		},
		results: map[string][]contractx.SimulationResult{
			"job-1": {{Status: "Orchestrator started", ResultID: "job-2", Raw: json.RawMessage(`{}`)}},
		},
	}

	out, err := newFastOrchestrator(backend, WithAttempts(5)).Await(context.Background(), "sk", "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != contractx.StatusProcessing {
		t.Fatalf("status = %q", out.Status)
	}
	// The caller must resume against the redirected identifier.
	if out.JobID != "job-2" {
		t.Fatalf("job id = %q, want job-2", out.JobID)
	}
}

func TestFailurePayloadPassesThrough(t *testing.T) {
	t.Parallel()

	failureBody := `{"status":"FAILURE","error":"insufficient trials"}`
	backend := &fakeBackend{
		statuses: map[string][]contractx.SimulationStatus{
			"job-1": {{Status: "FAILURE", Raw: json.RawMessage(failureBody)}},
		},
	}

	out, err := newFastOrchestrator(backend).Await(context.Background(), "sk", "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != contractx.StatusFailure {
		t.Fatalf("status = %q", out.Status)
	}
	if string(out.Result) != failureBody {
		t.Fatalf("failure body altered: %s", out.Result)
	}
	if len(backend.resultCalls) != 0 {
		t.Fatal("failure must not trigger a result fetch")
	}
}

func TestTransportErrorAbortsImmediately(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{statusErr: errors.New("connection refused")}

	_, err := newFastOrchestrator(backend).Await(context.Background(), "sk", "job-1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(backend.statusCalls) != 1 {
		t.Fatalf("status checks = %d, want 1", len(backend.statusCalls))
	}
}

func TestEmptyJobIDRejected(t *testing.T) {
	t.Parallel()

	_, err := newFastOrchestrator(&fakeBackend{}).Await(context.Background(), "sk", "")
	if !errors.Is(err, ErrEmptyJobID) {
		t.Fatalf("expected ErrEmptyJobID, got %v", err)
	}
}
