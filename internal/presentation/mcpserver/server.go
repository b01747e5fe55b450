package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with all onboarding tools registered.
func NewServer(uc UseCases, version string) *server.MCPServer {
	s := server.NewMCPServer("onboardiq", version)
	h := NewHandlers(uc)

	s.AddTool(ToolAssessApplication, h.HandleAssessApplication)
	s.AddTool(ToolSubmitApplication, h.HandleSubmitApplication)
	s.AddTool(ToolGetSubmission, h.HandleGetSubmission)
	s.AddTool(ToolListSubmissions, h.HandleListSubmissions)
	s.AddTool(ToolSubmissionStatistics, h.HandleSubmissionStatistics)

	return s
}
