package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skprofiling/members-api/internal/core/domain"
)

const profilesCollection = "profiles"

// ProfileRepository implements ports.ProfileRepository using MongoDB. The
// unique index on user_id is the serialization point for concurrent
// submissions: there is never more than one document per user.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

// Upsert executes the create-or-replace as a single FindOneAndUpdate keyed on
// user_id. Every enumerated field is written from p (nil pointers store
// null); image bytes enter the update only when replaceImage is set.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile, replaceImage bool) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"name":         p.Name,
		"dob":          p.DOB,
		"age":          p.Age,
		"gender":       p.Gender,
		"civil_status": p.CivilStatus,
		"religion":     p.Religion,
		"contact":      p.Contact,
		"address":      p.Address,

		"school_level":  p.SchoolLevel,
		"school_name":   p.SchoolName,
		"school_status": p.SchoolStatus,
		"employment":    p.Employment,
		"work_type":     p.WorkType,
		"work_time":     p.WorkTime,

		"illnesses":    p.Illnesses,
		"healthcare":   p.Healthcare,
		"disabilities": p.Disabilities,

		"youth_org":   p.YouthOrg,
		"risks":       p.Risks,
		"experience":  p.Experience,
		"groups":      p.Groups,
		"willingness": p.Willingness,

		"guardian_name":    p.GuardianName,
		"guardian_contact": p.GuardianContact,
		"relationship":     p.Relationship,

		"updated_at": now,
	}
	if replaceImage {
		set["profile_image"] = p.ProfileImage
		set["image_mime"] = p.ImageMime
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"user_id":    p.UserID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out domain.Profile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID}, update, opts).Decode(&out)
	if mongo.IsDuplicateKeyError(err) {
		// Two first-time submissions raced on the unique index; the loser
		// reruns and takes the update branch.
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID}, update, opts).Decode(&out)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return &out, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) FindImage(ctx context.Context, userID string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		ProfileImage []byte  `bson:"profile_image"`
		ImageMime    *string `bson:"image_mime"`
	}
	opts := options.FindOne().SetProjection(bson.M{"profile_image": 1, "image_mime": 1})
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", domain.ErrImageNotFound
		}
		return nil, "", fmt.Errorf("find profile image: %w", err)
	}
	if len(doc.ProfileImage) == 0 {
		return nil, "", domain.ErrImageNotFound
	}

	mime := ""
	if doc.ImageMime != nil {
		mime = *doc.ImageMime
	}
	return doc.ProfileImage, mime, nil
}

// summaryProjection keeps list queries off the full image-bearing documents
// except for the fields the directory actually renders.
var summaryProjection = bson.M{
	"name":          1,
	"contact":       1,
	"address":       1,
	"guardian_name": 1,
	"profile_image": 1,
	"image_mime":    1,
}

func (r *ProfileRepository) SearchByName(ctx context.Context, query string) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "name", Value: 1}})

	return r.findAll(ctx, filter, opts)
}

func (r *ProfileRepository) ListNamed(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name": bson.M{"$ne": nil}}
	opts := options.Find().SetProjection(bson.M{
		"name":    1,
		"contact": 1,
		"address": 1,
	})

	return r.findAll(ctx, filter, opts)
}

func (r *ProfileRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Profile, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var out []*domain.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the unique user_id index the upsert relies on.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
