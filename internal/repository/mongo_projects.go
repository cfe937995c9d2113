package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gkharab/projecthub-api/internal/models"
)

// MongoProjectRepository is the MongoDB-backed ProjectRepository
type MongoProjectRepository struct {
	collection *mongo.Collection
}

// NewMongoProjectRepository creates a MongoProjectRepository over the projects collection
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{collection: db.Collection("projects")}
}

func (r *MongoProjectRepository) findOne(ctx context.Context, filter bson.M) (*models.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var project models.Project
	err := r.collection.FindOne(ctx, filter).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoProjectRepository) FindByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Project, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
}

func (r *MongoProjectRepository) list(ctx context.Context, filter bson.M, page Page) ([]models.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*queryTimeout)
	defer cancel()

	findOptions := options.Find().
		SetSkip(page.Skip()).
		SetLimit(page.Limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return projects, totalCount, nil
}

func (r *MongoProjectRepository) ListAll(ctx context.Context, page Page) ([]models.Project, int64, error) {
	return r.list(ctx, bson.M{}, page)
}

func (r *MongoProjectRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, page Page) ([]models.Project, int64, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID}, page)
}

func (r *MongoProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	project.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        project.Name,
		"description": project.Description,
		"updated_at":  project.UpdatedAt,
	}}
	res, err := r.collection.UpdateByID(ctx, project.ID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProjectRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{})
}
