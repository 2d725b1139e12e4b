package database

import "time"

// Severity levels accepted for an alert. Anything outside this set is
// rejected at the service layer before a row is written.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// ValidSeverities returns the closed set of accepted severities.
func ValidSeverities() []string {
	return []string{SeverityInfo, SeverityWarning, SeverityCritical}
}

// IsValidSeverity reports whether s is one of the accepted severities.
func IsValidSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// SeverityRank maps a severity to its sort weight (critical highest).
// Unknown severities rank below info; given write-time validation they
// should never occur.
func SeverityRank(s string) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Alert is a single alert tied to a provider and, optionally, one of
// its credentials. ProviderID and CredentialID are opaque references;
// no referential integrity is enforced here.
//
// An alert is open while ResolvedAt is nil. There is no separate
// status column: ResolvedAt is the sole open/closed discriminator.
// WindowDays is caller-supplied context recorded at write time and is
// never interpreted by the store.
type Alert struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ProviderID     uint       `gorm:"not null;index" json:"provider_id"`
	CredentialID   *uint      `json:"credential_id"`
	Severity       string     `gorm:"type:varchar(20);not null;index" json:"severity"`
	WindowDays     int        `gorm:"not null" json:"window_days"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	Channel        string     `gorm:"type:varchar(50);not null;default:ui" json:"channel"`
	CreatedAt      time.Time  `gorm:"not null;index" json:"created_at"`
	ResolvedAt     *time.Time `gorm:"index" json:"resolved_at"`
	ResolutionNote *string    `gorm:"type:text" json:"resolution_note"`
}

func (Alert) TableName() string {
	return "alerts"
}

// Resolved reports whether the alert has been resolved.
func (a *Alert) Resolved() bool {
	return a.ResolvedAt != nil
}
