package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection is the subset of *mongo.Collection used by the repository.
type Collection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteMany(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	InsertMany(ctx context.Context, docs []any, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// Client is the subset of *mongo.Client used for health checks and shutdown.
type Client interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// jobDocument is the stored layout of a posting. Numeric fields are pointers
// so that a missing field stays distinguishable from zero.
type jobDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Title             string             `bson:"job_title"`
	CompanyName       string             `bson:"company_name"`
	Location          string             `bson:"location"`
	Lat               *float64           `bson:"lat,omitempty"`
	Lng               *float64           `bson:"lng,omitempty"`
	SalaryString      string             `bson:"salary_string"`
	Weight            *float64           `bson:"job_weight,omitempty"`
	GeocodingAttempts int                `bson:"geocoding_attempts,omitempty"`
	GeocodingError    string             `bson:"geocoding_error,omitempty"`
}

func (d jobDocument) posting() models.JobPosting {
	job := models.JobPosting{
		Title:             d.Title,
		CompanyName:       d.CompanyName,
		Location:          d.Location,
		Lat:               d.Lat,
		Lng:               d.Lng,
		SalaryString:      d.SalaryString,
		Weight:            d.Weight,
		GeocodingAttempts: d.GeocodingAttempts,
		GeocodingError:    d.GeocodingError,
	}
	if !d.ID.IsZero() {
		job.ID = d.ID.Hex()
	}
	return job
}

func newJobDocument(job models.JobPosting) jobDocument {
	return jobDocument{
		Title:        job.Title,
		CompanyName:  job.CompanyName,
		Location:     job.Location,
		Lat:          job.Lat,
		Lng:          job.Lng,
		SalaryString: job.SalaryString,
		Weight:       job.Weight,
	}
}

// MongoRepository stores job postings as documents of one collection.
type MongoRepository struct {
	coll   Collection
	client Client
	log    *slog.Logger
}

// NewMongoRepository wraps an already connected collection.
func NewMongoRepository(coll Collection, client Client, log *slog.Logger) *MongoRepository {
	return &MongoRepository{coll: coll, client: client, log: log}
}

// OpenMongo connects to uri and returns a repository over database.collection.
func OpenMongo(ctx context.Context, uri, database, collection string, log *slog.Logger) (*MongoRepository, error) {
	const pingTimeout = 5 * time.Second

	if uri == "" {
		return nil, errors.New("mongo connection string is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.InfoContext(ctx, "MongoDB connected", "database", database, "collection", collection)

	return NewMongoRepository(client.Database(database).Collection(collection), client, log), nil
}

// ListJobs retrieves every document in natural order.
func (r *MongoRepository) ListJobs(ctx context.Context) ([]models.JobPosting, error) {
	return r.find(ctx, bson.D{}, options.Find())
}

// FetchJobsForGeocoding retrieves documents with a location and missing or zero
// coordinates that have not exhausted their geocoding attempts.
func (r *MongoRepository) FetchJobsForGeocoding(ctx context.Context, limit int) ([]models.JobPosting, error) {
	filter := bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "location", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}},
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "lat", Value: bson.D{{Key: "$in", Value: bson.A{nil, 0}}}}},
			bson.D{{Key: "lng", Value: bson.D{{Key: "$in", Value: bson.A{nil, 0}}}}},
		}}},
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "geocoding_attempts", Value: bson.D{{Key: "$exists", Value: false}}}},
			bson.D{{Key: "geocoding_attempts", Value: bson.D{{Key: "$lt", Value: MaxGeocodingAttempts}}}},
		}}},
	}}}

	jobs, err := r.find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs without coordinates: %w", err)
	}

	return jobs, nil
}

func (r *MongoRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]models.JobPosting, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []jobDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}

	jobs := make([]models.JobPosting, 0, len(docs))
	for _, doc := range docs {
		jobs = append(jobs, doc.posting())
	}
	r.log.DebugContext(ctx, "Jobs loaded from mongo", "count", len(jobs))

	return jobs, nil
}

// UpdateJobCoordinates stores the coordinates of a document and clears its geocoding error.
func (r *MongoRepository) UpdateJobCoordinates(ctx context.Context, jobID string, coords models.Coordinates) error {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", jobID, err)
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "lat", Value: coords.Latitude}, {Key: "lng", Value: coords.Longitude}}},
		{Key: "$unset", Value: bson.D{{Key: "geocoding_error", Value: ""}}},
	}
	if _, err = r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update); err != nil {
		return fmt.Errorf("failed to update job coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the geocoding attempt count of a document and records the failure.
func (r *MongoRepository) IncrementFailureCount(ctx context.Context, jobID string, errMsg string) error {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", jobID, err)
	}

	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "geocoding_attempts", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "geocoding_error", Value: errMsg}}},
	}
	if _, err = r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update); err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

// ReplaceJobs empties the collection and inserts jobs. The two steps are not
// atomic: readers may observe an empty collection in between.
func (r *MongoRepository) ReplaceJobs(ctx context.Context, jobs []models.JobPosting) (int, error) {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return 0, fmt.Errorf("failed to delete jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(jobs))
	for _, job := range jobs {
		docs = append(docs, newJobDocument(job))
	}

	result, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert jobs: %w", err)
	}

	return len(result.InsertedIDs), nil
}

// Ping checks that the primary answers.
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (r *MongoRepository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongo: %w", err)
	}
	return nil
}
