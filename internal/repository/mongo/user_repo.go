package mongo

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

type userDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Email           string             `bson:"email"`
	Name            string             `bson:"name"`
	PasswordHash    string             `bson:"passwordHash"`
	Age             *int               `bson:"age,omitempty"`
	Weight          *float64           `bson:"weight,omitempty"`
	Height          *float64           `bson:"height,omitempty"`
	FitnessGoal     *string            `bson:"fitnessGoal,omitempty"`
	ExperienceLevel *string            `bson:"experienceLevel,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toDomain() *domain.User {
	u := &domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Age:          d.Age,
		Weight:       d.Weight,
		Height:       d.Height,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.FitnessGoal != nil {
		g := domain.FitnessGoal(*d.FitnessGoal)
		u.FitnessGoal = &g
	}
	if d.ExperienceLevel != nil {
		l := domain.ExperienceLevel(*d.ExperienceLevel)
		u.ExperienceLevel = &l
	}
	return u
}

func optionalString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

// mongoUserRepository implements repository.UserRepository using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user. Email uniqueness relies on the index from EnsureUserIndexes.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Email == "" || user.PasswordHash == "" {
		return errors.New("user email and password hash are required")
	}

	id := primitive.NewObjectID()
	now := time.Now().UTC()
	doc := userDocument{
		ID:              id,
		Email:           user.Email,
		Name:            user.Name,
		PasswordHash:    user.PasswordHash,
		Age:             user.Age,
		Weight:          user.Weight,
		Height:          user.Height,
		FitnessGoal:     optionalString(user.FitnessGoal),
		ExperienceLevel: optionalString(user.ExperienceLevel),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	user.ID = id.Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves a user by the hex form of their ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// UpdateProfile sets the name and generator profile fields.
func (r *mongoUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	oid, ok := objectID(user.ID)
	if !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":            user.Name,
			"age":             user.Age,
			"weight":          user.Weight,
			"height":          user.Height,
			"fitnessGoal":     optionalString(user.FitnessGoal),
			"experienceLevel": optionalString(user.ExperienceLevel),
			"updatedAt":       user.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
