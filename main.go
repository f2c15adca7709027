package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nowcapital/retirement-mcp/cli"
	"github.com/nowcapital/retirement-mcp/planner/simulation"
	"github.com/nowcapital/retirement-mcp/planner/tool"
	configx "github.com/nowcapital/retirement-mcp/pkg/config"
	_ "github.com/nowcapital/retirement-mcp/pkg/logger/autoload"
	nowcapitalx "github.com/nowcapital/retirement-mcp/pkg/nowcapital"
)

func main() {
	backendCfg := configx.MustNew[nowcapitalx.Config]("NOWCAPITAL")
	client := nowcapitalx.NewClient(*backendCfg)

	svc := tool.NewService(client, simulation.New(client))
	mcpServer := tool.NewServer(svc)

	rootCmd := &cobra.Command{
		Use:          "retirement-mcp",
		Short:        "MCP server for NowCapital retirement planning",
		SilenceUsage: true,
	}
	rootCmd.Version = tool.Version
	rootCmd.AddCommand(cli.NewServeCmd(mcpServer))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
