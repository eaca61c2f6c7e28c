package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories depend on. Run once at
// startup, before serving traffic; the profile upsert in particular is only
// safe under the unique user_id index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := NewProfileRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return NewAnnouncementRepository(db).EnsureIndexes(ctx)
}
