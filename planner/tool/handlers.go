// Package tool exposes the planner as MCP tools: argument binding, credential
// resolution, backend calls, and structured result shaping. The flat wire
// contract with the agent lives here; everything below it works on the
// composed records.
package tool

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
	"github.com/nowcapital/retirement-mcp/planner/household"
	"github.com/nowcapital/retirement-mcp/planner/payload"
	"github.com/nowcapital/retirement-mcp/planner/report"
	"github.com/nowcapital/retirement-mcp/planner/simulation"
	"github.com/nowcapital/retirement-mcp/pkg/credentials"
	"github.com/nowcapital/retirement-mcp/pkg/nowcapital"
)

// CalculationBackend is the synchronous half of the NowCapital API.
type CalculationBackend interface {
	CalculateMaxSpend(ctx context.Context, apiKey string, doc *payload.Document) (nowcapital.MaxSpendResult, error)
	CalculateMaxSpendWithYearlyData(ctx context.Context, apiKey string, doc *payload.Document) (nowcapital.YearlyPlanResult, error)
	SubmitMonteCarlo(ctx context.Context, apiKey string, doc *payload.MonteCarloDocument) (string, error)
}

// JobAwaiter runs one bounded polling window for an asynchronous simulation.
type JobAwaiter interface {
	Await(ctx context.Context, apiKey, jobID string) (simulation.Outcome, error)
}

// Service holds the tool handlers' shared dependencies.
type Service struct {
	backend CalculationBackend
	jobs    JobAwaiter
}

func NewService(backend CalculationBackend, jobs JobAwaiter) *Service {
	return &Service{backend: backend, jobs: jobs}
}

type spendAnalysis struct {
	Person1Total float64 `json:"p1_total"`
	Person2Total float64 `json:"p2_total"`
	MonthlySpend float64 `json:"monthly_spend"`
}

type spendResponse struct {
	MaxMonthlySpend float64       `json:"max_monthly_spend"`
	Currency        string        `json:"currency"`
	Mode            string        `json:"mode"`
	Analysis        spendAnalysis `json:"analysis"`
	Narrative       string        `json:"narrative"`
}

type detailedPlanResponse struct {
	spendResponse
	Person1YearlyDataCSV string `json:"person1_yearly_data_csv"`
	Person2YearlyDataCSV string `json:"person2_yearly_data_csv,omitempty"`
}

func newSpendResponse(h contractx.Household, monthly float64, deathAge int) spendResponse {
	mode := "Individual"
	if h.Couple {
		mode = "Couple"
	}
	return spendResponse{
		MaxMonthlySpend: monthly,
		Currency:        "CAD",
		Mode:            mode,
		Analysis: spendAnalysis{
			Person1Total: h.Person1.Total(),
			Person2Total: h.Person2.Total(),
			MonthlySpend: monthly,
		},
		Narrative: report.Narrative(h, monthly, deathAge),
	}
}

func (s *Service) handleSustainableSpend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := defaultHouseholdArgs()
	if err := req.BindArguments(&args); err != nil {
		return errorResult("Invalid arguments: " + err.Error()), nil
	}

	key := credentials.Resolve(ctx, args.APIKey)
	if key == "" {
		return errorResult(msgMissingAPIKey), nil
	}

	h := household.Normalize(args.householdInput())
	doc := payload.Build(h, args.scenario())

	res, err := s.backend.CalculateMaxSpend(ctx, key, doc)
	if err != nil {
		log.Warn().Err(err).Str("tool", ToolSustainableSpend).Msg("backend call failed")
		return errorResult(classify(err)), nil
	}

	return jsonResult(newSpendResponse(h, res.MaxSpendMonthly, args.DeathAge)), nil
}

func (s *Service) handleDetailedPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := defaultHouseholdArgs()
	if err := req.BindArguments(&args); err != nil {
		return errorResult("Invalid arguments: " + err.Error()), nil
	}

	key := credentials.Resolve(ctx, args.APIKey)
	if key == "" {
		return errorResult(msgMissingAPIKey), nil
	}

	h := household.Normalize(args.householdInput())
	doc := payload.Build(h, args.scenario())

	res, err := s.backend.CalculateMaxSpendWithYearlyData(ctx, key, doc)
	if err != nil {
		log.Warn().Err(err).Str("tool", ToolDetailedSpendPlan).Msg("backend call failed")
		return errorResult(classify(err)), nil
	}

	p1CSV, err := report.YearlyCSV(res.Person1YearlyData)
	if err != nil {
		return errorResult(classify(err)), nil
	}
	p2CSV, err := report.YearlyCSV(res.Person2YearlyData)
	if err != nil {
		return errorResult(classify(err)), nil
	}

	return jsonResult(detailedPlanResponse{
		spendResponse:        newSpendResponse(h, res.MaxSpendMonthly, args.DeathAge),
		Person1YearlyDataCSV: p1CSV,
		Person2YearlyDataCSV: p2CSV,
	}), nil
}

func (s *Service) handleStartMonteCarlo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := defaultMonteCarloArgs()
	if err := req.BindArguments(&args); err != nil {
		return errorResult("Invalid arguments: " + err.Error()), nil
	}

	key := credentials.Resolve(ctx, args.APIKey)
	if key == "" {
		return errorResult(msgMissingAPIKey), nil
	}

	h := household.Normalize(args.householdInput())
	doc := payload.BuildMonteCarlo(h, args.scenario(), args.params())

	jobID, err := s.backend.SubmitMonteCarlo(ctx, key, doc)
	if err != nil {
		log.Warn().Err(err).Str("tool", ToolStartMonteCarlo).Msg("backend call failed")
		return errorResult(classify(err)), nil
	}

	log.Info().Str("job_id", jobID).Int("num_trials", args.NumTrials).Msg("monte carlo simulation submitted")
	return jsonResult(map[string]string{
		"status": contractx.StatusPending,
		"job_id": jobID,
	}), nil
}

type pollResponse struct {
	Status  string          `json:"status"`
	JobID   string          `json:"job_id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (s *Service) handlePollResults(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args PollArgs
	if err := req.BindArguments(&args); err != nil {
		return errorResult("Invalid arguments: " + err.Error()), nil
	}
	if strings.TrimSpace(args.JobID) == "" {
		return errorResult("job_id is required. Use the value returned by start_monte_carlo_simulation."), nil
	}

	key := credentials.Resolve(ctx, args.APIKey)
	if key == "" {
		return errorResult(msgMissingAPIKey), nil
	}

	outcome, err := s.jobs.Await(ctx, key, args.JobID)
	if err != nil {
		log.Warn().Err(err).Str("job_id", args.JobID).Msg("polling failed")
		return errorResult(classify(err)), nil
	}

	resp := pollResponse{Status: outcome.Status, JobID: outcome.JobID}
	switch outcome.Status {
	case contractx.StatusSuccess:
		resp.Result = outcome.Result
	case contractx.StatusFailure:
		resp.Detail = outcome.Result
	default:
		resp.Message = "Simulation is still running. Call get_monte_carlo_results again with this job_id."
	}
	return jsonResult(resp), nil
}
