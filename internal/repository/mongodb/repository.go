package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/camposoft/tambero/internal/domain/models"
)

const (
	breedingCollection  = "breeding_records"
	plantingsCollection = "plantings"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("record not found")

// Repository defines storage for breeding records and registered plantings.
type Repository interface {
	CreateBreedingRecord(ctx context.Context, rec models.BreedingRecord) (models.BreedingRecord, error)
	UpdateBreedingRecord(ctx context.Context, rec models.BreedingRecord) error
	GetBreedingRecord(ctx context.Context, id string) (models.BreedingRecord, error)
	ListBreedingRecords(ctx context.Context, animalID string) ([]models.BreedingRecord, error)
	CreatePlanting(ctx context.Context, planting models.Planting) (models.Planting, error)
	ListPlantings(ctx context.Context) ([]models.Planting, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// CreateBreedingRecord inserts a new breeding record and returns it with its
// generated id.
func (r *MongoDBRepository) CreateBreedingRecord(ctx context.Context, rec models.BreedingRecord) (models.BreedingRecord, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection(breedingCollection).InsertOne(ctx, rec); err != nil {
		return models.BreedingRecord{}, fmt.Errorf("insert breeding record: %w", err)
	}
	return rec, nil
}

// UpdateBreedingRecord replaces a breeding record in full. The engine always
// produces the complete record, so a replace keeps cleared fields cleared.
func (r *MongoDBRepository) UpdateBreedingRecord(ctx context.Context, rec models.BreedingRecord) error {
	res, err := r.collection(breedingCollection).ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if err != nil {
		return fmt.Errorf("update breeding record %s: %w", rec.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetBreedingRecord fetches one breeding record by id.
func (r *MongoDBRepository) GetBreedingRecord(ctx context.Context, id string) (models.BreedingRecord, error) {
	var rec models.BreedingRecord
	err := r.collection(breedingCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.BreedingRecord{}, ErrNotFound
	}
	if err != nil {
		return models.BreedingRecord{}, fmt.Errorf("find breeding record %s: %w", id, err)
	}
	return rec, nil
}

// ListBreedingRecords returns records, optionally filtered by animal id.
func (r *MongoDBRepository) ListBreedingRecords(ctx context.Context, animalID string) ([]models.BreedingRecord, error) {
	filter := bson.M{}
	if animalID != "" {
		filter["animal_id"] = animalID
	}

	cursor, err := r.collection(breedingCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list breeding records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.BreedingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode breeding records: %w", err)
	}
	return records, nil
}

// CreatePlanting registers a planting for the daily sweep.
func (r *MongoDBRepository) CreatePlanting(ctx context.Context, planting models.Planting) (models.Planting, error) {
	planting.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection(plantingsCollection).InsertOne(ctx, planting); err != nil {
		return models.Planting{}, fmt.Errorf("insert planting: %w", err)
	}
	return planting, nil
}

// ListPlantings returns every registered planting.
func (r *MongoDBRepository) ListPlantings(ctx context.Context) ([]models.Planting, error) {
	cursor, err := r.collection(plantingsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list plantings: %w", err)
	}
	defer cursor.Close(ctx)

	var plantings []models.Planting
	if err := cursor.All(ctx, &plantings); err != nil {
		return nil, fmt.Errorf("decode plantings: %w", err)
	}
	return plantings, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}
