package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mongo-starter/internal/database"
	"github.com/deppfellow/mongo-starter/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository reads and writes the users collection.
type UserRepository struct {
	*Collection[model.User]
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{Collection: NewCollection[model.User](db, model.UsersCollection)}
}

// GetByID returns the user with the given hex id, or nil when there is none.
// An id that is not a valid ObjectID hex string also yields nil.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	user, err := r.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail looks a user up by normalized address, or returns nil.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := r.FindOne(ctx, bson.M{"email": model.NormalizeEmail(email)})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// Create inserts user and sets its ID. Duplicate emails surface as the
// driver's duplicate key error.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	id, err := r.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}
