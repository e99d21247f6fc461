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

const videoCollectionName = "video_analyses"

type videoDocument struct {
	ID           primitive.ObjectID  `bson:"_id"`
	UserID       string              `bson:"userId"`
	ObjectKey    string              `bson:"s3ObjectKey"`
	FileName     string              `bson:"fileName"`
	ContentType  string              `bson:"contentType"`
	Size         int64               `bson:"size"`
	ExerciseType string              `bson:"exerciseType"`
	Analysis     domain.FormAnalysis `bson:"analysis"`
	Feedback     string              `bson:"feedback"`
	CreatedAt    time.Time           `bson:"createdAt"`
}

func (d *videoDocument) toDomain() domain.VideoAnalysis {
	return domain.VideoAnalysis{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		ObjectKey:    d.ObjectKey,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		Size:         d.Size,
		ExerciseType: d.ExerciseType,
		Analysis:     d.Analysis,
		Feedback:     d.Feedback,
		CreatedAt:    d.CreatedAt,
	}
}

// mongoVideoRepository implements repository.VideoAnalysisRepository
type mongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a video analysis repository backed by MongoDB.
func NewMongoVideoRepository(db *mongo.Database) repository.VideoAnalysisRepository {
	return &mongoVideoRepository{
		collection: db.Collection(videoCollectionName),
	}
}

// Create inserts video metadata and its analysis.
func (r *mongoVideoRepository) Create(ctx context.Context, v *domain.VideoAnalysis) error {
	if v.UserID == "" || v.ObjectKey == "" {
		return errors.New("video requires userId and s3ObjectKey")
	}
	id := primitive.NewObjectID()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	doc := videoDocument{
		ID:           id,
		UserID:       v.UserID,
		ObjectKey:    v.ObjectKey,
		FileName:     v.FileName,
		ContentType:  v.ContentType,
		Size:         v.Size,
		ExerciseType: v.ExerciseType,
		Analysis:     v.Analysis,
		Feedback:     v.Feedback,
		CreatedAt:    v.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	v.ID = id.Hex()
	return nil
}

// GetByID retrieves video metadata by its ID.
func (r *mongoVideoRepository) GetByID(ctx context.Context, id string) (*domain.VideoAnalysis, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc videoDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	v := doc.toDomain()
	return &v, nil
}

func (r *mongoVideoRepository) ListByUser(ctx context.Context, userID string) ([]domain.VideoAnalysis, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []videoDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.VideoAnalysis, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Delete removes video metadata by ID.
func (r *mongoVideoRepository) Delete(ctx context.Context, id string) error {
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

// EnsureVideoIndexes creates necessary indexes for the video_analyses collection.
func EnsureVideoIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "s3ObjectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
