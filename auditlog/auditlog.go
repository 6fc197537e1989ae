// Package auditlog records privileged admin actions.
package auditlog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/models"
)

// ErrUnknownActivity rejects an entry whose type is outside the vocabulary
var ErrUnknownActivity = errors.New("unknown admin activity type")

// Log is the append-only admin activity log
type Log struct {
	DB databases.AdminLogDatabase
}

// New returns a Log over db
func New(db databases.AdminLogDatabase) *Log {
	return &Log{DB: db}
}

// Append records one admin action and returns its id
func (l *Log) Append(ctx context.Context, activity models.AdminActivityType, details string) (string, error) {
	if !activity.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownActivity, activity)
	}
	entry := &models.AdminLog{Type: activity, Details: details}
	id, err := l.DB.Append(ctx, entry)
	if err != nil {
		return "", err
	}
	zap.S().Infow("admin activity", "type", activity, "details", details, "id", id)
	return id, nil
}

// ListRecent returns at most limit entries, newest first
func (l *Log) ListRecent(ctx context.Context, limit int64) ([]models.AdminLog, error) {
	return l.DB.ListRecent(ctx, limit)
}

// Stats counts repair orders and deleted cases among the most recent
// databases.MaxListLimit entries. Older entries are not counted.
func (l *Log) Stats(ctx context.Context) (models.AdminStats, error) {
	logs, err := l.DB.ListRecent(ctx, databases.MaxListLimit)
	if err != nil {
		return models.AdminStats{}, err
	}
	stats := models.AdminStats{Logs: logs}
	for _, entry := range logs {
		switch entry.Type {
		case models.ActivityRepairOrder:
			stats.TotalRepairOrders++
		case models.ActivityDeleteCase:
			stats.TotalDeletedCases++
		}
	}
	return stats, nil
}
