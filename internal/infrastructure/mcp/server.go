package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/felixgeelhaar/evmkit/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
	"github.com/felixgeelhaar/mcp-go"
)

type Server struct {
	mcpServer    *mcp.Server
	evmSvc       *application.EVMService
	portfolioSvc *application.PortfolioService
	root         string
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

// projectErr maps lookup failures to messages an agent can act on.
func projectErr(err error, id string) error {
	switch {
	case errors.Is(err, portfolio.ErrNoPortfolio):
		return mcpErr("No portfolio found. Run 'evmkit init' in the workspace first.")
	case errors.Is(err, portfolio.ErrProjectNotFound):
		return mcpErr(fmt.Sprintf("Project %q is not in the portfolio.", id))
	case errors.Is(err, portfolio.ErrNoProgress):
		return mcpErr(fmt.Sprintf("Project %q has no task progress to analyze.", id))
	case errors.Is(err, evm.ErrInvalidInput):
		return mcpErr(fmt.Sprintf("Project %q has invalid EVM input: %v", id, err))
	}
	return mcpErr("Unable to analyze project. Run 'evmkit validate' to check the portfolio.")
}

func NewServer(root string) (*Server, error) {
	services, err := wiring.BuildAppServices(root)
	if services == nil {
		return nil, fmt.Errorf("build services: %w", err)
	}
	if err != nil {
		slog.Warn("mcp server using default alert thresholds", "error", err)
	}

	info := mcp.ServerInfo{
		Name:    "evmkit",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("evmkit MCP Server"),
			mcp.WithDescription("evmkit exposes earned value metrics, alerts, forecasts and portfolio KPIs to MCP clients."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/evmkit"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use evmkit_report for a full project assessment and evmkit_kpi_dashboard for the portfolio view."),
		),
		evmSvc:       services.EVM,
		portfolioSvc: services.Portfolio,
		root:         root,
	}

	s.registerTools()
	s.registerSchemaResource()
	return s, nil
}

type ProjectArgs struct {
	ProjectID string `json:"project_id" jsonschema:"description=The ID of the project in portfolio.yaml"`
}

type AlertsArgs struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"description=Optional project ID; all projects when empty"`
}

type OrgArgs struct {
	Root string `json:"root,omitempty" jsonschema:"description=Directory to scan for workspaces (defaults to the parent of the server workspace)"`
	From string `json:"from,omitempty" jsonschema:"description=Start of the reporting period (YYYY-MM-DD); open when omitted"`
	To   string `json:"to,omitempty" jsonschema:"description=End of the reporting period (YYYY-MM-DD); open when omitted"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("evmkit_metrics").
		Description("Compute the earned value metrics (PV, EV, AC, CPI, SPI, EAC, TCPI) of a project").
		Handler(s.handleMetrics)

	s.mcpServer.Tool("evmkit_report").
		Description("Full EVM report of a project: summary, metrics, trends, alerts, forecasts and variance").
		Handler(s.handleReport)

	s.mcpServer.Tool("evmkit_forecast").
		Description("Completion cost and date under current and planned performance").
		Handler(s.handleForecast)

	s.mcpServer.Tool("evmkit_alerts").
		Description("Threshold and trend alerts for one project or the whole workspace").
		Handler(s.handleAlerts)

	s.mcpServer.Tool("evmkit_kpi_dashboard").
		Description("Portfolio KPI dashboard grouped by category, trend and severity").
		Handler(s.handleDashboard)

	s.mcpServer.Tool("evmkit_org_dashboard").
		Description("KPI dashboard aggregated over every workspace below a directory").
		Handler(s.handleOrgDashboard)
}

func (s *Server) report(ctx context.Context, id string) (*application.Report, error) {
	if id == "" {
		return nil, mcpErr("project_id is required.")
	}
	report, err := s.evmSvc.ProjectReport(ctx, id)
	if err != nil {
		return nil, projectErr(err, id)
	}
	return report, nil
}

func (s *Server) handleMetrics(ctx context.Context, args ProjectArgs) (any, error) {
	report, err := s.report(ctx, args.ProjectID)
	if err != nil {
		return nil, err
	}
	return report.Metrics, nil
}

func (s *Server) handleReport(ctx context.Context, args ProjectArgs) (any, error) {
	report, err := s.report(ctx, args.ProjectID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Server) handleForecast(ctx context.Context, args ProjectArgs) (any, error) {
	report, err := s.report(ctx, args.ProjectID)
	if err != nil {
		return nil, err
	}

	type forecastResp struct {
		ProjectID          string                 `json:"project_id"`
		BudgetAtCompletion float64                `json:"budget_at_completion"`
		PlannedCompletion  string                 `json:"planned_completion_date"`
		Scenarios          []evm.ForecastScenario `json:"scenarios"`
	}
	return forecastResp{
		ProjectID:          report.ProjectID,
		BudgetAtCompletion: report.Metrics.BudgetAtCompletion,
		PlannedCompletion:  report.Metrics.PlannedCompletionDate.Format("2006-01-02"),
		Scenarios:          report.Forecasts,
	}, nil
}

func (s *Server) handleAlerts(ctx context.Context, args AlertsArgs) (any, error) {
	if args.ProjectID != "" {
		report, err := s.report(ctx, args.ProjectID)
		if err != nil {
			return nil, err
		}
		if len(report.Alerts) == 0 {
			return "No alerts for this project.", nil
		}
		return report.Alerts, nil
	}

	alerts, err := s.evmSvc.WorkspaceAlerts(ctx)
	if err != nil {
		return nil, projectErr(err, "")
	}
	if len(alerts) == 0 {
		return "No alerts in this workspace.", nil
	}
	return alerts, nil
}

func (s *Server) handleDashboard(ctx context.Context, args struct{}) (any, error) {
	dash, err := s.portfolioSvc.WorkspaceDashboard(ctx)
	if err != nil {
		if errors.Is(err, portfolio.ErrNoPortfolio) {
			return nil, projectErr(err, "")
		}
		return nil, mcpErr("Unable to compute the KPI dashboard. Run 'evmkit validate' to check the portfolio.")
	}
	return dash, nil
}

func (s *Server) handleOrgDashboard(ctx context.Context, args OrgArgs) (any, error) {
	root := args.Root
	if root == "" {
		root = filepath.Dir(s.root)
	}
	from, err := storage.ParseDate(args.From)
	if err != nil {
		return nil, mcpErr("from must be a YYYY-MM-DD date.")
	}
	to, err := storage.ParseDate(args.To)
	if err != nil {
		return nil, mcpErr("to must be a YYYY-MM-DD date.")
	}
	dash, err := s.portfolioSvc.OrgDashboard(ctx, root, kpi.Timeframe{Start: from, End: to})
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Unable to aggregate workspaces under %s.", root))
	}
	return dash, nil
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}
