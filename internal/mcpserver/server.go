// Package mcpserver exposes the research endpoints as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	infralogger "github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

const serverName = "company-research"

// Researcher is the service surface the tools call.
type Researcher interface {
	CompanyInfo(ctx context.Context, req domain.ResearchRequest) (*domain.CompanyInfoResult, error)
	SalaryBenefits(ctx context.Context, req domain.ResearchRequest) (*domain.SalaryBenefitsResult, error)
	CompanyReviews(ctx context.Context, req domain.ResearchRequest) (*domain.CompanyReviewsResult, error)
	InterviewPrep(ctx context.Context, req domain.ResearchRequest) (*domain.InterviewPrepResult, error)
	ScoreLinks(ctx context.Context, req domain.ScoreLinksRequest) (*domain.ScoreLinksResult, error)
	AutocompleteJobTitles(q string) []string
	AutocompleteCompanies(q string) []string
}

type tools struct {
	research Researcher
	log      infralogger.Logger
}

// New builds an MCP server with every research tool registered.
func New(research Researcher, version string, log infralogger.Logger) *server.MCPServer {
	s := server.NewMCPServer(serverName, version)
	t := &tools{research: research, log: log}

	t.registerCompanyInfo(s)
	t.registerSalaryBenefits(s)
	t.registerCompanyReviews(s)
	t.registerInterviewPrep(s)
	t.registerScoreLinks(s)
	t.registerAutocomplete(s)

	return s
}

// ServeStdio blocks serving s on stdin and stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

var (
	companyProp  = map[string]interface{}{"type": "string", "description": "Company name"}
	jobTitleProp = map[string]interface{}{"type": "string", "description": "Job title being researched"}
	locationProp = map[string]interface{}{"type": "string", "description": "City, State or REMOTE (optional)"}
	maxLinksProp = map[string]interface{}{"type": "integer", "description": "Maximum links to return (1-20)"}
	noCacheProp  = map[string]interface{}{"type": "boolean", "description": "Bypass the cache for this request"}
)

func (t *tools) registerCompanyInfo(s *server.MCPServer) {
	tool := mcp.NewTool("company_info",
		mcp.WithDescription("Find the company's official pages: about, careers, news, leadership and culture"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"company":   companyProp,
			"job_title": jobTitleProp,
			"location":  locationProp,
			"max_links": maxLinksProp,
			"no_cache":  noCacheProp,
		},
		Required: []string{"company", "job_title"},
	}
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, errResult := researchArgs(request)
		if errResult != nil {
			return errResult, nil
		}
		result, err := t.research.CompanyInfo(ctx, req)
		return t.toResult("company_info", result, err)
	})
}

func (t *tools) registerSalaryBenefits(s *server.MCPServer) {
	tool := mcp.NewTool("salary_benefits",
		mcp.WithDescription("Find salary ranges and benefits for a role at a company"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"company":   companyProp,
			"job_title": jobTitleProp,
			"location":  locationProp,
			"max_links": maxLinksProp,
			"no_cache":  noCacheProp,
		},
		Required: []string{"company", "job_title"},
	}
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, errResult := researchArgs(request)
		if errResult != nil {
			return errResult, nil
		}
		result, err := t.research.SalaryBenefits(ctx, req)
		return t.toResult("salary_benefits", result, err)
	})
}

func (t *tools) registerCompanyReviews(s *server.MCPServer) {
	tool := mcp.NewTool("company_reviews",
		mcp.WithDescription("Find employee reviews, culture commentary and recent news about a company"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"company":   companyProp,
			"max_links": maxLinksProp,
			"no_cache":  noCacheProp,
		},
		Required: []string{"company"},
	}
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, errResult := researchArgs(request)
		if errResult != nil {
			return errResult, nil
		}
		result, err := t.research.CompanyReviews(ctx, req)
		return t.toResult("company_reviews", result, err)
	})
}

func (t *tools) registerInterviewPrep(s *server.MCPServer) {
	tool := mcp.NewTool("interview_prep",
		mcp.WithDescription("Find interview questions and preparation guides for a role at a company"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"company":   companyProp,
			"job_title": jobTitleProp,
			"max_links": maxLinksProp,
			"no_cache":  noCacheProp,
		},
		Required: []string{"company", "job_title"},
	}
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, errResult := researchArgs(request)
		if errResult != nil {
			return errResult, nil
		}
		result, err := t.research.InterviewPrep(ctx, req)
		return t.toResult("interview_prep", result, err)
	})
}

func (t *tools) registerScoreLinks(s *server.MCPServer) {
	tool := mcp.NewTool("score_links",
		mcp.WithDescription("Score arbitrary links for relevance to a company and keep those above a threshold"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"links": map[string]interface{}{
				"type":        "array",
				"description": "Links to score, each with url, title and description",
				"items":       map[string]interface{}{"type": "object"},
			},
			"company":   companyProp,
			"category":  map[string]interface{}{"type": "string", "description": "Category hint (optional)"},
			"threshold": map[string]interface{}{"type": "integer", "description": "Minimum score 0-100 (default: 45)"},
			"max_links": maxLinksProp,
		},
		Required: []string{"links", "company"},
	}
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var links []domain.Link
		raw, err := json.Marshal(args["links"])
		if err == nil {
			err = json.Unmarshal(raw, &links)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("links must be an array of objects: %v", err)), nil
		}

		req := domain.ScoreLinksRequest{
			Links:     links,
			Company:   stringArg(args, "company"),
			Category:  stringArg(args, "category"),
			Threshold: intArg(args, "threshold"),
			MaxLinks:  intArg(args, "max_links"),
		}
		result, err := t.research.ScoreLinks(ctx, req)
		return t.toResult("score_links", result, err)
	})
}

func (t *tools) registerAutocomplete(s *server.MCPServer) {
	tool := mcp.NewTool("autocomplete",
		mcp.WithDescription("Suggest job titles or company names matching a prefix"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"kind": map[string]interface{}{
				"type":        "string",
				"description": "What to complete",
				"enum":        []string{"job_title", "company"},
			},
			"q": map[string]interface{}{"type": "string", "description": "Prefix to complete"},
		},
		Required: []string{"kind", "q"},
	}
	s.AddTool(tool, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		q := stringArg(args, "q")
		switch kind := stringArg(args, "kind"); kind {
		case "job_title":
			return jsonResult(t.research.AutocompleteJobTitles(q))
		case "company":
			return jsonResult(t.research.AutocompleteCompanies(q))
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q: use job_title or company", kind)), nil
		}
	})
}

// researchArgs reads the shared research arguments. Range checks are left
// to the service so both transports report the same errors.
func researchArgs(request mcp.CallToolRequest) (domain.ResearchRequest, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return domain.ResearchRequest{}, mcp.NewToolResultError("invalid arguments format")
	}

	req := domain.ResearchRequest{
		Company:  stringArg(args, "company"),
		JobTitle: stringArg(args, "job_title"),
		Location: stringArg(args, "location"),
		MaxLinks: intArg(args, "max_links"),
	}
	if v, ok := args["no_cache"].(bool); ok {
		req.NoCache = v
	}
	return req, nil
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// intArg accepts JSON numbers, which decode as float64.
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

func (t *tools) toResult(tool string, result any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return mcp.NewToolResultError(validationErr.Error()), nil
		}
		t.log.Error("Tool call failed",
			infralogger.String("tool", tool),
			infralogger.Error(err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err)), nil
	}
	return jsonResult(result)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}
