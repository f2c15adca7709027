package contract

import "context"

// SimulationBackend is the slice of the calculation service the job
// orchestrator polls against.
type SimulationBackend interface {
	SimulationStatus(ctx context.Context, apiKey, jobID string) (SimulationStatus, error)
	SimulationResult(ctx context.Context, apiKey, jobID string) (SimulationResult, error)
}
