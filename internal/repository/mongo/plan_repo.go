package mongo

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "training_plans"

// planDocument keeps the day schedule as subdocuments. Nutrition and
// recommendations are stored as the raw JSON text they arrived as.
type planDocument struct {
	ID              primitive.ObjectID         `bson:"_id"`
	UserID          string                     `bson:"userId"`
	PlanType        string                     `bson:"planType"`
	Workouts        map[string]domain.DayEntry `bson:"workouts"`
	Nutrition       string                     `bson:"nutrition,omitempty"`
	Recommendations string                     `bson:"recommendations,omitempty"`
	CompletedDays   []string                   `bson:"completedDays"`
	IsActive        bool                       `bson:"isActive"`
	Version         int64                      `bson:"version"`
	CreatedAt       time.Time                  `bson:"createdAt"`
	UpdatedAt       time.Time                  `bson:"updatedAt"`
}

func workoutsToDoc(c domain.PlanContent) map[string]domain.DayEntry {
	out := make(map[string]domain.DayEntry, len(c.Workouts))
	for d, e := range c.Workouts {
		out[string(d)] = e
	}
	return out
}

func (d *planDocument) toDomain() (*domain.TrainingPlan, error) {
	workouts := make(map[domain.Weekday]domain.DayEntry, len(d.Workouts))
	for name, e := range d.Workouts {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", d.ID.Hex(), err)
		}
		workouts[day] = e
	}
	done, err := domain.NewDaySet(d.CompletedDays...)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", d.ID.Hex(), err)
	}
	p := &domain.TrainingPlan{
		ID:       d.ID.Hex(),
		UserID:   d.UserID,
		PlanType: domain.PlanType(d.PlanType),
		Content: domain.PlanContent{
			Workouts: workouts,
		},
		CreatedAt:     d.CreatedAt,
		IsActive:      d.IsActive,
		CompletedDays: done,
		Version:       d.Version,
	}
	if d.Nutrition != "" {
		p.Content.Nutrition = json.RawMessage(d.Nutrition)
	}
	if d.Recommendations != "" {
		p.Content.Recommendations = json.RawMessage(d.Recommendations)
	}
	return p, nil
}

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new TrainingPlan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new training plan at version 1.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	if plan.UserID == "" {
		return errors.New("plan requires a user id")
	}
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}

	doc := planDocument{
		ID:              id,
		UserID:          plan.UserID,
		PlanType:        string(plan.PlanType),
		Workouts:        workoutsToDoc(plan.Content),
		Nutrition:       string(plan.Content.Nutrition),
		Recommendations: string(plan.Content.Recommendations),
		CompletedDays:   plan.CompletedDays.Strings(),
		IsActive:        plan.IsActive,
		Version:         1,
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	plan.ID = id.Hex()
	plan.Version = 1
	return nil
}

// GetByID retrieves a single training plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc planDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// ListByUser retrieves all plans of a user, newest first.
func (r *mongoPlanRepository) ListByUser(ctx context.Context, userID string) ([]domain.TrainingPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []planDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	plans := make([]domain.TrainingPlan, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, nil
}

// Update replaces content, completion set and active flag when the stored
// version matches plan.Version.
func (r *mongoPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	oid, ok := objectID(plan.ID)
	if !ok {
		return repository.ErrNotFound
	}

	filter := bson.M{"_id": oid, "version": plan.Version}
	updateDoc := bson.M{
		"$set": bson.M{
			"workouts":        workoutsToDoc(plan.Content),
			"nutrition":       string(plan.Content.Nutrition),
			"recommendations": string(plan.Content.Recommendations),
			"completedDays":   plan.CompletedDays.Strings(),
			"isActive":        plan.IsActive,
			"updatedAt":       time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		n, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}
	plan.Version++
	return nil
}

func (r *mongoPlanRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return repository.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoPlanRepository) DeleteActiveByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID, "isActive": true})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsurePlanIndexes creates the indexes for listing and active-plan lookups.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
