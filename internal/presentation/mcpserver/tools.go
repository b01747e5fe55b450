package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Descriptions are what the model reads to pick a tool.

var ToolAssessApplication = mcp.NewTool("assess_application",
	mcp.WithDescription(
		"Score an onboarding application (vendor or client) without storing it. "+
			"Returns a 0-100 risk score, a risk level, the implied review status, "+
			"the explained risk factors, and duplicate warnings against stored submissions."),
	mcp.WithObject("application",
		mcp.Required(),
		mcp.Description("Application fields using the onboarding form names, e.g. "+
			"{\"entityType\": \"vendor\", \"companyName\": \"Acme\", \"email\": \"ops@acme.example\", "+
			"\"hasEncryption\": \"Yes\", \"complianceCertifications\": [\"SOC 2\"]}")),
)

var ToolSubmitApplication = mcp.NewTool("submit_application",
	mcp.WithDescription(
		"Store an onboarding application and return the scored submission. "+
			"The application must name its entityType ('vendor' or 'client')."),
	mcp.WithObject("application",
		mcp.Required(),
		mcp.Description("Application fields using the onboarding form names")),
)

var ToolGetSubmission = mcp.NewTool("get_submission",
	mcp.WithDescription("Fetch a stored submission with its risk assessment and duplicate warnings."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Submission ID (UUID)")),
)

var ToolListSubmissions = mcp.NewTool("list_submissions",
	mcp.WithDescription("List stored submissions, optionally filtered by review status."),
	mcp.WithString("status",
		mcp.Description("Only return submissions with this effective status"),
		mcp.Enum("approved", "review", "flagged")),
	mcp.WithString("sort",
		mcp.Description("Ordering: newest (default), oldest, risk-high, or risk-low"),
		mcp.Enum("newest", "oldest", "risk-high", "risk-low")),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of submissions to return (default 20)")),
)

var ToolSubmissionStatistics = mcp.NewTool("submission_statistics",
	mcp.WithDescription(
		"Summarize stored submissions: totals by status, entity type and risk level, "+
			"and the average risk score."),
)
