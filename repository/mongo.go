package repository

import (
	"context"
	"time"

	"cleancity-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 10 * time.Second

// MongoIssues is the MongoDB-backed issue store.
type MongoIssues struct {
	col *mongo.Collection
}

// NewMongoIssues returns an issue store over the "issues" collection.
func NewMongoIssues(db *mongo.Database) *MongoIssues {
	return &MongoIssues{col: db.Collection("issues")}
}

func issueFilterQuery(f IssueFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" && f.Category != "all" {
		filter["category"] = f.Category
	}
	if f.Status != "" && f.Status != "all" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": f.Search, "$options": "i"}},
			{"description": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	return filter
}

func (r *MongoIssues) Insert(ctx context.Context, issue models.Issue) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, issue)
	return err
}

func (r *MongoIssues) Get(ctx context.Context, id string) (models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var issue models.Issue
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return models.Issue{}, ErrNotFound
	}
	if err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (r *MongoIssues) List(ctx context.Context, f IssueFilter) ([]models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	sortOptions := bson.D{{Key: "createdAt", Value: -1}}
	if f.Sort == "oldest" {
		sortOptions = bson.D{{Key: "createdAt", Value: 1}}
	}

	findOptions := options.Find().SetSort(sortOptions)
	if f.Skip > 0 {
		findOptions.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		findOptions.SetLimit(f.Limit)
	}

	cursor, err := r.col.Find(ctx, issueFilterQuery(f), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *MongoIssues) Count(ctx context.Context, f IssueFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, issueFilterQuery(f))
}

func (r *MongoIssues) Update(ctx context.Context, id string, patch IssuePatch) (models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"updatedAt": time.Now().UnixMilli()}
	if patch.Title != nil {
		update["title"] = *patch.Title
	}
	if patch.Description != nil {
		update["description"] = *patch.Description
	}
	if patch.Category != nil {
		update["category"] = *patch.Category
	}
	if patch.ImageDataURL != nil {
		update["imageDataUrl"] = *patch.ImageDataURL
	}
	if patch.ProofImageURL != nil {
		update["proofImageUrl"] = *patch.ProofImageURL
	}
	if patch.Location != nil {
		update["location"] = *patch.Location
	}
	if patch.Address != nil {
		update["address"] = *patch.Address
	}
	if patch.Status != nil {
		update["status"] = *patch.Status
	}
	if patch.AssignedToWorkerID != nil {
		update["assignedToWorkerId"] = *patch.AssignedToWorkerID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Issue
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return models.Issue{}, ErrNotFound
	}
	if err != nil {
		return models.Issue{}, err
	}
	return updated, nil
}

// MongoWorkers is the MongoDB-backed worker roster.
type MongoWorkers struct {
	col *mongo.Collection
}

// NewMongoWorkers returns a worker store over the "workers" collection.
func NewMongoWorkers(db *mongo.Database) *MongoWorkers {
	return &MongoWorkers{col: db.Collection("workers")}
}

func (r *MongoWorkers) Insert(ctx context.Context, w models.Worker) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, w)
	return err
}

func (r *MongoWorkers) Get(ctx context.Context, id string) (models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var w models.Worker
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return models.Worker{}, ErrNotFound
	}
	if err != nil {
		return models.Worker{}, err
	}
	return w, nil
}

func (r *MongoWorkers) List(ctx context.Context) ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workers := []models.Worker{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *MongoWorkers) SetActive(ctx context.Context, id string, active bool) (models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Worker
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"active": active}}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return models.Worker{}, ErrNotFound
	}
	if err != nil {
		return models.Worker{}, err
	}
	return updated, nil
}

func (r *MongoWorkers) EnsureSeed(ctx context.Context, seed []models.Worker) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(seed))
	for _, w := range seed {
		docs = append(docs, w)
	}
	_, err = r.col.InsertMany(ctx, docs)
	return err
}
