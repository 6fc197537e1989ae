package auditlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/models"
)

func TestLog_AppendAndList(t *testing.T) {
	l := New(databases.NewMemoryAdminLogDatabase())
	ctx := context.Background()

	id, err := l.Append(ctx, models.ActivityLogin, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	_, err = l.Append(ctx, models.ActivityDeleteCase, "Deleted case c-1")
	require.NoError(t, err)

	logs, err := l.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActivityDeleteCase, logs[0].Type)
	assert.Equal(t, "Deleted case c-1", logs[0].Details)
}

func TestLog_AppendRejectsUnknownType(t *testing.T) {
	db := databases.NewMemoryAdminLogDatabase()
	l := New(db)

	_, err := l.Append(context.Background(), "PROMOTE", "")

	assert.ErrorIs(t, err, ErrUnknownActivity)
	logs, _ := db.ListRecent(context.Background(), 0)
	assert.Empty(t, logs)
}

func TestLog_StatsCountsTheRecentWindow(t *testing.T) {
	l := New(databases.NewMemoryAdminLogDatabase())
	ctx := context.Background()

	// these fall out of the window once 200 newer entries exist
	for i := 0; i < 5; i++ {
		_, _ = l.Append(ctx, models.ActivityDeleteCase, "")
	}
	for i := 0; i < 150; i++ {
		_, _ = l.Append(ctx, models.ActivityRepairOrder, "")
	}
	for i := 0; i < 50; i++ {
		_, _ = l.Append(ctx, models.ActivityLogin, "")
	}

	stats, err := l.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, stats.TotalRepairOrders)
	assert.Equal(t, 0, stats.TotalDeletedCases)
	assert.Len(t, stats.Logs, 200)
}

type brokenDB struct{}

func (brokenDB) Append(context.Context, *models.AdminLog) (string, error) {
	return "", errors.New("write failed")
}

func (brokenDB) ListRecent(context.Context, int64) ([]models.AdminLog, error) {
	return nil, errors.New("read failed")
}

func TestLog_StoreErrorsPropagate(t *testing.T) {
	l := New(brokenDB{})

	_, err := l.Append(context.Background(), models.ActivityLogout, "")
	assert.EqualError(t, err, "write failed")

	_, err = l.Stats(context.Background())
	assert.EqualError(t, err, "read failed")
}
