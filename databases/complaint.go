package databases

// go generate: mockery --name ComplaintDatabase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rashtra/rashtra-api/models"
)

const complaintName = "complaints"

// ErrComplaintNotFound is returned when a complaint id does not exist (or was deleted)
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintDatabase contains the methods to use with the complaint database
type ComplaintDatabase interface {
	// Create assigns the id and creation timestamp, persists the complaint and returns the id
	Create(ctx context.Context, complaint *models.Complaint) (string, error)
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	// ListAll returns at most limit complaints created at or after since
	// (zero since means no lower bound), newest first
	ListAll(ctx context.Context, limit int64, since time.Time) ([]models.Complaint, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error
	Delete(ctx context.Context, id string) error
}

type complaintDatabase struct {
	db  DatabaseHelper
	now func() time.Time
}

// NewComplaintDatabase initializes a new instance of complaint database with the provided db connection
func NewComplaintDatabase(db DatabaseHelper) ComplaintDatabase {
	return &complaintDatabase{
		db:  db,
		now: time.Now,
	}
}

func (c *complaintDatabase) Create(ctx context.Context, complaint *models.Complaint) (string, error) {
	complaint.ID = primitive.NewObjectID().Hex()
	complaint.Timestamp = c.now().UTC()

	_, err := c.db.Collection(complaintName).InsertOne(ctx, complaint)
	if err != nil {
		complaint.ID = ""
		return "", fmt.Errorf("failed to insert complaint: %w", err)
	}
	return complaint.ID, nil
}

func (c *complaintDatabase) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	complaint := &models.Complaint{}
	err := c.db.Collection(complaintName).FindOne(ctx, bson.M{"_id": id}).Decode(&complaint)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (c *complaintDatabase) ListAll(ctx context.Context, limit int64, since time.Time) ([]models.Complaint, error) {
	filter := bson.M{}
	if !since.IsZero() {
		filter["timestamp"] = bson.M{"$gte": since}
	}
	return c.find(ctx, filter, limit)
}

func (c *complaintDatabase) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Complaint, error) {
	return c.find(ctx, bson.M{"userId": userID}, limit)
}

func (c *complaintDatabase) find(ctx context.Context, filter interface{}, limit int64) ([]models.Complaint, error) {
	var complaints []models.Complaint
	curr, err := c.db.Collection(complaintName).Find(ctx, filter, newestFirstOpts(limit))
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &complaints)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	return complaints, nil
}

// UpdateStatus only sets the status field; severity, score, description and
// timestamp are left untouched
func (c *complaintDatabase) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	res, err := c.db.Collection(complaintName).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

func (c *complaintDatabase) Delete(ctx context.Context, id string) error {
	res, err := c.db.Collection(complaintName).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrComplaintNotFound
	}
	return nil
}
