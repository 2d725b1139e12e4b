package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/credentialwatch/alertd/internal/database"
	"gorm.io/gorm"
)

// ErrInvalidSeverity is returned when a caller supplies a severity
// outside the accepted set. The message names the full set so tool
// callers can self-correct.
var ErrInvalidSeverity = errors.New("severity must be one of: 'info', 'warning', 'critical'")

// ErrAlertNotFound is returned when an operation references an alert
// id that does not exist.
var ErrAlertNotFound = errors.New("alert not found")

// DefaultChannel is recorded on alerts logged without an explicit
// channel. The channel is metadata only; nothing is dispatched on it.
const DefaultChannel = "ui"

// AlertService implements the alert lifecycle: logging, querying open
// alerts, resolution, and severity summaries. All validation lives
// here; the store trusts its input.
type AlertService struct {
	store *database.AlertStore
}

// NewAlertService creates a new AlertService on the given store.
func NewAlertService(store *database.AlertStore) *AlertService {
	return &AlertService{store: store}
}

// LogAlertParams are the inputs for LogAlert. CredentialID and Channel
// are optional. WindowDays is caller-supplied context stored without
// interpretation; it is unrelated to the window_days summary
// parameter.
type LogAlertParams struct {
	ProviderID   uint
	CredentialID *uint
	Severity     string
	WindowDays   int
	Message      string
	Channel      string
}

// LogAlert validates the severity, persists a new open alert, and
// returns the stored record. No other field is validated: provider and
// credential ids are opaque references and the message may be empty.
func (s *AlertService) LogAlert(params LogAlertParams) (*database.Alert, error) {
	if !database.IsValidSeverity(params.Severity) {
		return nil, ErrInvalidSeverity
	}

	channel := params.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	alert := &database.Alert{
		ProviderID:   params.ProviderID,
		CredentialID: params.CredentialID,
		Severity:     params.Severity,
		WindowDays:   params.WindowDays,
		Message:      params.Message,
		Channel:      channel,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Insert(alert); err != nil {
		return nil, fmt.Errorf("failed to insert alert: %w", err)
	}

	log.Printf("Logged %s alert %d for provider %d", alert.Severity, alert.ID, alert.ProviderID)
	return alert, nil
}

// GetOpenAlerts returns unresolved alerts, optionally filtered by
// provider and severity, ordered by severity rank (critical first)
// then creation time (newest first). An empty result is not an error.
func (s *AlertService) GetOpenAlerts(providerID *uint, severity *string) ([]database.Alert, error) {
	alerts, err := s.store.Scan(database.AlertFilter{
		OpenOnly:   true,
		ProviderID: providerID,
		Severity:   severity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan open alerts: %w", err)
	}
	return alerts, nil
}

// GetOpenAlertsPage returns one page of open alerts in the same order
// as GetOpenAlerts, along with the total number of matches.
func (s *AlertService) GetOpenAlertsPage(providerID *uint, severity *string, offset, limit int) ([]database.Alert, int64, error) {
	alerts, total, err := s.store.ScanPage(database.AlertFilter{
		OpenOnly:   true,
		ProviderID: providerID,
		Severity:   severity,
	}, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan open alerts: %w", err)
	}
	return alerts, total, nil
}

// MarkAlertResolved stamps the alert with the current UTC time and the
// given note, and returns the updated record. Resolving an
// already-resolved alert is deliberately permitted: the previous
// resolved_at and resolution_note are overwritten (last writer wins).
func (s *AlertService) MarkAlertResolved(alertID uint, note *string) (*database.Alert, error) {
	alert, err := s.store.UpdateResolution(alertID, time.Now().UTC(), note)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("alert with id %d not found: %w", alertID, ErrAlertNotFound)
		}
		return nil, fmt.Errorf("failed to resolve alert %d: %w", alertID, err)
	}

	log.Printf("Resolved alert %d", alert.ID)
	return alert, nil
}

// AlertSummary buckets alert counts by severity. WindowDays echoes the
// requested window for traceability (nil when the summary covered all
// alerts).
type AlertSummary struct {
	WindowDays  *int             `json:"window_days"`
	TotalAlerts int64            `json:"total_alerts"`
	BySeverity  map[string]int64 `json:"by_severity"`
}

// SummarizeAlerts counts alerts, open and resolved, by severity. When
// windowDays is non-nil only alerts created within the trailing window
// are counted. Every severity key is present in the result,
// zero-filled when no alerts matched.
func (s *AlertService) SummarizeAlerts(windowDays *int) (*AlertSummary, error) {
	var createdAfter *time.Time
	if windowDays != nil {
		cutoff := time.Now().UTC().Add(-time.Duration(*windowDays) * 24 * time.Hour)
		createdAfter = &cutoff
	}

	counts, err := s.store.CountBySeverity(createdAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}

	bySeverity := make(map[string]int64, 3)
	var total int64
	for _, severity := range database.ValidSeverities() {
		bySeverity[severity] = counts[severity]
		total += counts[severity]
	}

	return &AlertSummary{
		WindowDays:  windowDays,
		TotalAlerts: total,
		BySeverity:  bySeverity,
	}, nil
}
