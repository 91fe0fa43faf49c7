package audit

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/studio-scheduler/internal/events"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestPublishWritesAuditRow(t *testing.T) {
	db, mock := newMockDB(t)
	l := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_logs"`)).
		WithArgs(uint(1), uint(20), "AppointmentApproved", "appointment", uint(7), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	ev, _ := events.New("approve", 1, 7, "pending", "confirmed", time.Now())
	ev.ActorID = 20
	require.NoError(t, l.Publish(context.Background(), ev))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryNormalize(t *testing.T) {
	q := Query{Page: -1, Limit: 1000}
	q.normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 50, q.Limit)

	q = Query{Page: 3, Limit: 20}
	q.normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Limit)
}
