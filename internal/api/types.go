package api

// ========== Alert Types ==========

// CreateAlertRequest is the request body for POST /api/alerts.
// WindowDays and Message are accepted as-is: any integer and any text,
// empty included, are valid at write time.
type CreateAlertRequest struct {
	ProviderID   uint   `json:"provider_id" validate:"required"`
	CredentialID *uint  `json:"credential_id"`
	Severity     string `json:"severity" validate:"required,oneof=info warning critical"`
	WindowDays   int    `json:"window_days"`
	Message      string `json:"message"`
	Channel      string `json:"channel"`
}

// ResolveAlertRequest is the request body for POST /api/alerts/{id}/resolve.
type ResolveAlertRequest struct {
	ResolutionNote *string `json:"resolution_note"`
}
