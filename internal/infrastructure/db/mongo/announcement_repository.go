package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skprofiling/members-api/internal/core/domain"
)

const announcementsCollection = "announcements"

// AnnouncementRepository implements ports.AnnouncementRepository using MongoDB.
type AnnouncementRepository struct {
	coll *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) *AnnouncementRepository {
	return &AnnouncementRepository{coll: db.Collection(announcementsCollection)}
}

// Insert persists a and assigns its id.
func (r *AnnouncementRepository) Insert(ctx context.Context, a *domain.Announcement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a.ID = uuid.NewString()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) ListRecent(ctx context.Context, limit int) ([]domain.Announcement, error) {
	return r.list(ctx, int64(limit))
}

func (r *AnnouncementRepository) ListAll(ctx context.Context) ([]domain.Announcement, error) {
	return r.list(ctx, 0)
}

func (r *AnnouncementRepository) list(ctx context.Context, limit int64) ([]domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	out := []domain.Announcement{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode announcements: %w", err)
	}
	return out, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

// EnsureIndexes creates the created_at index backing the newest-first listing.
func (r *AnnouncementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}
