package tool

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
	"github.com/nowcapital/retirement-mcp/pkg/credentials"
)

// Every failure goes back as a structured {"error": ...} text result. Tool
// callers are agents; a protocol-level error would abort the conversation
// where a payload the agent can read and relay keeps it going.
const (
	msgMissingAPIKey  = "API Key missing. Please set the " + credentials.EnvAPIKey + " environment variable."
	msgMissingBaseURL = "API URL missing. Please set the NOWCAPITAL_API_BASE_URL environment variable."
	msgAccessDenied   = "Access Denied: Your " + credentials.EnvAPIKey + " is invalid or missing permission."
)

func classify(err error) string {
	switch {
	case errors.Is(err, contractx.ErrMissingAPIKey):
		return msgMissingAPIKey
	case errors.Is(err, contractx.ErrMissingBaseURL):
		return msgMissingBaseURL
	case errors.Is(err, contractx.ErrAccessDenied):
		return msgAccessDenied
	case errors.Is(err, contractx.ErrUnreachable):
		return fmt.Sprintf("System Error: Could not connect to calculations engine (%v).", err)
	default:
		return fmt.Sprintf("Simulation Failed: The backend returned an error (%v).", err)
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return jsonResult(map[string]string{"error": msg})
}

func jsonResult(v any) *mcp.CallToolResult {
	encoded, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf(`{"error":"encode response: %v"}`, err))
	}
	return mcp.NewToolResultText(string(encoded))
}
