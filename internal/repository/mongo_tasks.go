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

// MongoTaskRepository is the MongoDB-backed TaskRepository
type MongoTaskRepository struct {
	collection *mongo.Collection
}

// NewMongoTaskRepository creates a MongoTaskRepository over the tasks collection
func NewMongoTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{collection: db.Collection("tasks")}
}

func (r *MongoTaskRepository) findOne(ctx context.Context, filter bson.M) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var task models.Task
	err := r.collection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoTaskRepository) FindByIDAndAssignee(ctx context.Context, id, assigneeID primitive.ObjectID) (*models.Task, error) {
	return r.findOne(ctx, bson.M{"_id": id, "assigned_user_id": assigneeID})
}

func (r *MongoTaskRepository) list(ctx context.Context, filter bson.M, page Page) ([]models.Task, int64, error) {
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

	var tasks []models.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return tasks, totalCount, nil
}

func (r *MongoTaskRepository) ListAll(ctx context.Context, page Page) ([]models.Task, int64, error) {
	return r.list(ctx, bson.M{}, page)
}

func (r *MongoTaskRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID, page Page) ([]models.Task, int64, error) {
	return r.list(ctx, bson.M{"project_id": projectID}, page)
}

func (r *MongoTaskRepository) ListByProjectAndStatus(ctx context.Context, projectID primitive.ObjectID, status models.TaskStatus, page Page) ([]models.Task, int64, error) {
	return r.list(ctx, bson.M{"project_id": projectID, "status": status}, page)
}

func (r *MongoTaskRepository) ListByProjectAndPriority(ctx context.Context, projectID primitive.ObjectID, priority models.TaskPriority, page Page) ([]models.Task, int64, error) {
	return r.list(ctx, bson.M{"project_id": projectID, "priority": priority}, page)
}

func (r *MongoTaskRepository) ListByAssignee(ctx context.Context, assigneeID primitive.ObjectID, page Page) ([]models.Task, int64, error) {
	return r.list(ctx, bson.M{"assigned_user_id": assigneeID}, page)
}

func (r *MongoTaskRepository) Insert(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, task)
	return err
}

func (r *MongoTaskRepository) Update(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	task.UpdatedAt = time.Now()
	set := bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"priority":    task.Priority,
		"updated_at":  task.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if task.DueDate != nil {
		set["due_date"] = *task.DueDate
	} else {
		update["$unset"] = bson.M{"due_date": ""}
	}
	if task.AssignedUserID != nil {
		set["assigned_user_id"] = *task.AssignedUserID
	} else {
		unset, ok := update["$unset"].(bson.M)
		if !ok {
			unset = bson.M{}
			update["$unset"] = unset
		}
		unset["assigned_user_id"] = ""
	}

	res, err := r.collection.UpdateByID(ctx, task.ID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
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

func (r *MongoTaskRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoTaskRepository) CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *MongoTaskRepository) CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"project_id": projectID})
}

func (r *MongoTaskRepository) CountByProjectAndStatus(ctx context.Context, projectID primitive.ObjectID, status models.TaskStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"project_id": projectID, "status": status})
}

func (r *MongoTaskRepository) CountByProjectAndPriority(ctx context.Context, projectID primitive.ObjectID, priority models.TaskPriority) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"project_id": projectID, "priority": priority})
}
