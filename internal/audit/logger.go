package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-scheduler/internal/events"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// Logger stores appointment events as audit rows. It is one of the
// dispatcher's sinks.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (*Logger) Name() string { return "audit" }

func (l *Logger) Publish(ctx context.Context, ev events.Event) error {
	userID := ev.ActorID
	entityID := ev.AppointmentID

	meta := map[string]any{
		"event_id": ev.ID,
		"from":     ev.PreviousStatus,
		"to":       ev.Status,
		"role":     ev.ActorRole,
	}
	if ev.Accepted != nil {
		meta["accepted"] = *ev.Accepted
	}

	return l.Log(ctx, ev.StudioID, &userID, string(ev.Type), "appointment", &entityID, meta)
}

func (l *Logger) Log(
	ctx context.Context,
	studioID uint,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		StudioID: studioID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Query filters the audit listing of one studio.
type Query struct {
	StudioID uint
	Action   string
	Entity   string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

func (q *Query) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q.normalize()

	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("studio_id = ?", q.StudioID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", q.To.Add(24*time.Hour))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error

	return logs, total, err
}
