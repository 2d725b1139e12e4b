package database

import (
	"time"

	"gorm.io/gorm"
)

// severityOrderExpr sorts severities critical > warning > info, with
// anything unrecognized last, then newest first. The trailing id sort
// makes ties reproducible across repeated scans of unchanged data.
// The CASE expression is valid on both SQLite and Postgres.
const severityOrderExpr = "CASE severity WHEN 'critical' THEN 3 WHEN 'warning' THEN 2 WHEN 'info' THEN 1 ELSE 0 END DESC, created_at DESC, id DESC"

// AlertStore persists Alert records. It performs no business
// validation; callers are expected to hand it well-formed input.
type AlertStore struct {
	db *gorm.DB
}

// NewAlertStore creates an AlertStore on the given handle.
func NewAlertStore(db *gorm.DB) *AlertStore {
	return &AlertStore{db: db}
}

// Insert persists a new alert, assigning its ID. CreatedAt is stamped
// with the current UTC time unless the caller set it explicitly.
func (s *AlertStore) Insert(alert *Alert) error {
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	return s.db.Create(alert).Error
}

// FindByID returns the alert with the given id, or
// gorm.ErrRecordNotFound.
func (s *AlertStore) FindByID(id uint) (*Alert, error) {
	var alert Alert
	if err := s.db.First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// UpdateResolution sets resolved_at and resolution_note on the alert,
// overwriting any previous resolution, and returns the updated record.
// Returns gorm.ErrRecordNotFound for an unknown id.
func (s *AlertStore) UpdateResolution(id uint, resolvedAt time.Time, note *string) (*Alert, error) {
	alert, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"resolved_at":     resolvedAt,
		"resolution_note": note,
	}
	if err := s.db.Model(alert).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.FindByID(id)
}

// AlertFilter restricts a Scan. Absent predicates match everything;
// supplied predicates are combined as a conjunction.
type AlertFilter struct {
	OpenOnly   bool
	ProviderID *uint
	Severity   *string
}

// Scan returns alerts matching the filter, ordered by severity rank
// descending, then created_at descending, then id descending.
func (s *AlertStore) Scan(filter AlertFilter) ([]Alert, error) {
	alerts := []Alert{}
	if err := s.filtered(filter).Order(severityOrderExpr).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// ScanPage returns one page of matching alerts in the same order as
// Scan, along with the total number of matches.
func (s *AlertStore) ScanPage(filter AlertFilter, offset, limit int) ([]Alert, int64, error) {
	var total int64
	if err := s.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	alerts := []Alert{}
	err := s.filtered(filter).Order(severityOrderExpr).Offset(offset).Limit(limit).Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

// CountBySeverity counts alerts grouped by severity, optionally
// restricted to those created at or after createdAfter. Severities
// with no matching rows are absent from the result; callers fill the
// gaps.
func (s *AlertStore) CountBySeverity(createdAfter *time.Time) (map[string]int64, error) {
	query := s.db.Model(&Alert{})
	if createdAfter != nil {
		query = query.Where("created_at >= ?", *createdAfter)
	}

	var rows []struct {
		Severity string
		Count    int64
	}
	if err := query.Select("severity, COUNT(id) AS count").Group("severity").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Severity] = row.Count
	}
	return counts, nil
}

func (s *AlertStore) filtered(filter AlertFilter) *gorm.DB {
	query := s.db.Model(&Alert{})
	if filter.OpenOnly {
		query = query.Where("resolved_at IS NULL")
	}
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	return query
}
