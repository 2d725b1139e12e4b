package tools

import (
	"context"
	"log"

	"github.com/credentialwatch/alertd/internal/mcp"
	"github.com/credentialwatch/alertd/internal/services"
)

// Registry wires the alert tools into the MCP server.
type Registry struct {
	server       *mcp.Server
	alertService *services.AlertService
	logger       *log.Logger
}

// NewRegistry creates a new tool registry.
func NewRegistry(server *mcp.Server, alertService *services.AlertService, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		server:       server,
		alertService: alertService,
		logger:       logger,
	}
}

// RegisterAll registers the four alert tools.
func (r *Registry) RegisterAll() {
	r.registerLogAlert()
	r.registerGetOpenAlerts()
	r.registerMarkAlertResolved()
	r.registerSummarizeAlerts()
	r.logger.Println("Alert tools registered")
}

func (r *Registry) registerLogAlert() {
	r.server.RegisterTool(mcp.Tool{
		Name:        "log_alert",
		Description: "Log a new alert for CredentialWatch. Severity must be 'info', 'warning', or 'critical'.",
		InputSchema: logAlertSchema(),
	}, func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		providerID, err := uintArg(args, "provider_id")
		if err != nil {
			return nil, err
		}
		severity, err := stringArg(args, "severity")
		if err != nil {
			return nil, err
		}
		windowDays, err := intArg(args, "window_days")
		if err != nil {
			return nil, err
		}
		message, err := stringArg(args, "message")
		if err != nil {
			return nil, err
		}

		var channel string
		if c := optionalStringArg(args, "channel"); c != nil {
			channel = *c
		}

		return r.alertService.LogAlert(services.LogAlertParams{
			ProviderID:   providerID,
			CredentialID: optionalUintArg(args, "credential_id"),
			Severity:     severity,
			WindowDays:   windowDays,
			Message:      message,
			Channel:      channel,
		})
	})
}

func (r *Registry) registerGetOpenAlerts() {
	r.server.RegisterTool(mcp.Tool{
		Name:        "get_open_alerts",
		Description: "List open (unresolved) alerts, most severe and most recent first. Optional filters: provider_id, severity.",
		InputSchema: getOpenAlertsSchema(),
	}, func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return r.alertService.GetOpenAlerts(
			optionalUintArg(args, "provider_id"),
			optionalStringArg(args, "severity"),
		)
	})
}

func (r *Registry) registerMarkAlertResolved() {
	r.server.RegisterTool(mcp.Tool{
		Name:        "mark_alert_resolved",
		Description: "Mark an alert as resolved. Returns the updated alert.",
		InputSchema: markAlertResolvedSchema(),
	}, func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		alertID, err := uintArg(args, "alert_id")
		if err != nil {
			return nil, err
		}
		return r.alertService.MarkAlertResolved(alertID, optionalStringArg(args, "resolution_note"))
	})
}

func (r *Registry) registerSummarizeAlerts() {
	r.server.RegisterTool(mcp.Tool{
		Name:        "summarize_alerts",
		Description: "Get a summary of alerts (count by severity). Optionally restrict to the last N days.",
		InputSchema: summarizeAlertsSchema(),
	}, func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return r.alertService.SummarizeAlerts(optionalIntArg(args, "window_days"))
	})
}
