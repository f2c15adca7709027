// Package autoload initializes the global logger from the environment on
// import:
//
//	import _ "github.com/nowcapital/retirement-mcp/pkg/logger/autoload"
package autoload

import (
	configx "github.com/nowcapital/retirement-mcp/pkg/config"
	logx "github.com/nowcapital/retirement-mcp/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
