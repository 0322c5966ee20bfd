package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskflow/task-service/internal/core/domain"
)

const rolesCollection = "roles"

type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *RoleRepository) FindByName(ctx context.Context, name domain.Role) (*domain.RoleRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"name": string(name)}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.RoleRecord{ID: mr.ID.Hex(), Name: domain.Role(mr.Name)}, nil
}

// Ensure upserts the role by name and returns the stored record. Repeated
// calls return the same id.
func (r *RoleRepository) Ensure(ctx context.Context, name domain.Role) (*domain.RoleRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mr mongoRole
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"name": string(name)},
		bson.M{"$setOnInsert": bson.M{"name": string(name)}},
		opts,
	).Decode(&mr)
	if err != nil {
		// Two concurrent upserts can race on the unique index; the loser re-reads.
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByName(ctx, name)
		}
		return nil, fmt.Errorf("ensure role: %w", err)
	}
	return &domain.RoleRecord{ID: mr.ID.Hex(), Name: domain.Role(mr.Name)}, nil
}

func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_role_name"),
	})
	return err
}
