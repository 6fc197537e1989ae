package databases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashtra/rashtra-api/models"
)

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestMemoryComplaintDatabase_ListNewestFirst(t *testing.T) {
	db := NewMemoryComplaintDatabase()
	db.now = fixedClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := db.Create(ctx, &models.Complaint{UserID: "u1", Status: models.StatusAutoVerified})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := db.ListAll(ctx, 0, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[0], got[2].ID)
}

func TestMemoryComplaintDatabase_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	db := NewMemoryComplaintDatabase()
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return at }
	ctx := context.Background()

	first, _ := db.Create(ctx, &models.Complaint{UserID: "u1"})
	second, _ := db.Create(ctx, &models.Complaint{UserID: "u1"})

	got, err := db.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second, got[0].ID)
	assert.Equal(t, first, got[1].ID)
}

func TestMemoryComplaintDatabase_LimitIsBounded(t *testing.T) {
	db := NewMemoryComplaintDatabase()
	ctx := context.Background()
	for i := 0; i < 205; i++ {
		_, err := db.Create(ctx, &models.Complaint{UserID: "u1"})
		require.NoError(t, err)
	}

	got, _ := db.ListAll(ctx, 1000, time.Time{})
	assert.Len(t, got, int(MaxListLimit))

	got, _ = db.ListAll(ctx, 5, time.Time{})
	assert.Len(t, got, 5)
}

func TestMemoryComplaintDatabase_ListSince(t *testing.T) {
	db := NewMemoryComplaintDatabase()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	db.now = fixedClock(start)
	ctx := context.Background()

	_, _ = db.Create(ctx, &models.Complaint{UserID: "u1"})
	_, _ = db.Create(ctx, &models.Complaint{UserID: "u1"})
	latest, _ := db.Create(ctx, &models.Complaint{UserID: "u1"})

	got, err := db.ListAll(ctx, 0, start.Add(3*time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, latest, got[0].ID)
}

func TestMemoryComplaintDatabase_ListByUser(t *testing.T) {
	db := NewMemoryComplaintDatabase()
	ctx := context.Background()

	_, _ = db.Create(ctx, &models.Complaint{UserID: "u1"})
	_, _ = db.Create(ctx, &models.Complaint{UserID: "u2"})

	got, err := db.ListByUser(ctx, "u2", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].UserID)

	got, err = db.ListByUser(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryComplaintDatabase_UpdateAndDelete(t *testing.T) {
	db := NewMemoryComplaintDatabase()
	ctx := context.Background()

	id, _ := db.Create(ctx, &models.Complaint{UserID: "u1", Status: models.StatusAutoVerified, Severity: models.SeverityHigh})

	require.NoError(t, db.UpdateStatus(ctx, id, models.StatusAssigned))
	c, err := db.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, c.Status)
	assert.Equal(t, models.SeverityHigh, c.Severity)

	require.NoError(t, db.Delete(ctx, id))
	_, err = db.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrComplaintNotFound)
	assert.ErrorIs(t, db.UpdateStatus(ctx, id, models.StatusRepaired), ErrComplaintNotFound)
	assert.ErrorIs(t, db.Delete(ctx, id), ErrComplaintNotFound)

	all, _ := db.ListAll(ctx, 0, time.Time{})
	assert.Empty(t, all)
}

func TestMemoryComplaintDatabase_CreateCancelled(t *testing.T) {
	db := NewMemoryComplaintDatabase()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Create(ctx, &models.Complaint{UserID: "u1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryAdminLogDatabase_ListRecent(t *testing.T) {
	db := NewMemoryAdminLogDatabase()
	ctx := context.Background()

	_, _ = db.Append(ctx, &models.AdminLog{Type: models.ActivityLogin})
	_, _ = db.Append(ctx, &models.AdminLog{Type: models.ActivityRepairOrder})
	_, _ = db.Append(ctx, &models.AdminLog{Type: models.ActivityLogout})

	logs, err := db.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActivityLogout, logs[0].Type)
	assert.Equal(t, models.ActivityRepairOrder, logs[1].Type)
	assert.NotEmpty(t, logs[0].ID)
}
