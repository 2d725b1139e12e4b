package tools

import (
	"github.com/credentialwatch/alertd/internal/database"
	"github.com/credentialwatch/alertd/internal/mcp"
)

// Input schemas for the alert tools. Numeric parameters are declared
// as integers; encoding/json delivers them as float64 and the argument
// helpers in args.go coerce them back.

func logAlertSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]mcp.Property{
			"provider_id": {
				Type:        "integer",
				Description: "ID of the provider this alert belongs to",
			},
			"credential_id": {
				Type:        "integer",
				Description: "Optional ID of the affected credential",
			},
			"severity": {
				Type:        "string",
				Description: "Alert severity",
				Enum:        database.ValidSeverities(),
			},
			"window_days": {
				Type:        "integer",
				Description: "Observation window in days the alert refers to",
			},
			"message": {
				Type:        "string",
				Description: "Free-form alert message",
			},
			"channel": {
				Type:        "string",
				Description: "Notification channel recorded with the alert",
				Default:     "ui",
			},
		},
		Required: []string{"provider_id", "severity", "window_days", "message"},
	}
}

func getOpenAlertsSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]mcp.Property{
			"provider_id": {
				Type:        "integer",
				Description: "Optional filter by provider ID",
			},
			"severity": {
				Type:        "string",
				Description: "Optional filter by severity",
				Enum:        database.ValidSeverities(),
			},
		},
	}
}

func markAlertResolvedSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]mcp.Property{
			"alert_id": {
				Type:        "integer",
				Description: "ID of the alert to resolve",
			},
			"resolution_note": {
				Type:        "string",
				Description: "Optional note explaining the resolution",
			},
		},
		Required: []string{"alert_id"},
	}
}

func summarizeAlertsSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]mcp.Property{
			"window_days": {
				Type:        "integer",
				Description: "Optional trailing window in days; omit to count all alerts",
			},
		},
	}
}
