package databases

// go generate: mockery --name AdminLogDatabase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rashtra/rashtra-api/models"
)

const adminLogName = "adminLogs"

// AdminLogDatabase contains the methods to use with the append-only admin log
type AdminLogDatabase interface {
	Append(ctx context.Context, entry *models.AdminLog) (string, error)
	ListRecent(ctx context.Context, limit int64) ([]models.AdminLog, error)
}

type adminLogDatabase struct {
	db  DatabaseHelper
	now func() time.Time
}

// NewAdminLogDatabase initializes a new instance of admin log database with the provided db connection
func NewAdminLogDatabase(db DatabaseHelper) AdminLogDatabase {
	return &adminLogDatabase{
		db:  db,
		now: time.Now,
	}
}

func (a *adminLogDatabase) Append(ctx context.Context, entry *models.AdminLog) (string, error) {
	entry.ID = primitive.NewObjectID().Hex()
	entry.Timestamp = a.now().UTC()

	_, err := a.db.Collection(adminLogName).InsertOne(ctx, entry)
	if err != nil {
		entry.ID = ""
		return "", fmt.Errorf("failed to append admin log: %w", err)
	}
	return entry.ID, nil
}

func (a *adminLogDatabase) ListRecent(ctx context.Context, limit int64) ([]models.AdminLog, error) {
	var logs []models.AdminLog
	curr, err := a.db.Collection(adminLogName).Find(ctx, bson.M{}, newestFirstOpts(limit))
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	if err = curr.All(ctx, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AdminLog{}
	}
	return logs, nil
}
