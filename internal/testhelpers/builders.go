package testhelpers

import (
	"time"

	"github.com/credentialwatch/alertd/internal/database"
)

// ========================================
// Alert Builder
// ========================================

// AlertBuilder builds Alert instances for testing
type AlertBuilder struct {
	alert database.Alert
}

// NewAlertBuilder creates a new alert builder with defaults: an open
// info alert for provider 1 created now.
func NewAlertBuilder() *AlertBuilder {
	return &AlertBuilder{
		alert: database.Alert{
			ProviderID: 1,
			Severity:   database.SeverityInfo,
			WindowDays: 30,
			Message:    "test alert",
			Channel:    "ui",
			CreatedAt:  time.Now().UTC(),
		},
	}
}

// WithProviderID sets the provider id
func (b *AlertBuilder) WithProviderID(id uint) *AlertBuilder {
	b.alert.ProviderID = id
	return b
}

// WithCredentialID sets the credential id
func (b *AlertBuilder) WithCredentialID(id uint) *AlertBuilder {
	b.alert.CredentialID = &id
	return b
}

// WithSeverity sets the severity
func (b *AlertBuilder) WithSeverity(severity string) *AlertBuilder {
	b.alert.Severity = severity
	return b
}

// WithMessage sets the message
func (b *AlertBuilder) WithMessage(message string) *AlertBuilder {
	b.alert.Message = message
	return b
}

// WithChannel sets the channel
func (b *AlertBuilder) WithChannel(channel string) *AlertBuilder {
	b.alert.Channel = channel
	return b
}

// WithWindowDays sets the write-time window
func (b *AlertBuilder) WithWindowDays(days int) *AlertBuilder {
	b.alert.WindowDays = days
	return b
}

// CreatedAt sets the creation timestamp
func (b *AlertBuilder) CreatedAt(t time.Time) *AlertBuilder {
	b.alert.CreatedAt = t
	return b
}

// CreatedDaysAgo sets the creation timestamp n days in the past
func (b *AlertBuilder) CreatedDaysAgo(n int) *AlertBuilder {
	b.alert.CreatedAt = time.Now().UTC().Add(-time.Duration(n) * 24 * time.Hour)
	return b
}

// Resolved marks the alert as resolved with the given note
func (b *AlertBuilder) Resolved(note string) *AlertBuilder {
	now := time.Now().UTC()
	b.alert.ResolvedAt = &now
	b.alert.ResolutionNote = &note
	return b
}

// Build returns the constructed alert
func (b *AlertBuilder) Build() database.Alert {
	return b.alert
}
