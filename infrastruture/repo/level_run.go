package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultHistoryLimit = 20

// LevelRunRepo stores the history of generated levels.
type LevelRunRepo struct {
	collection *mongo.Collection
}

var _ i.LevelRunRepo = &LevelRunRepo{}

// NewLevelRunRepo creates a LevelRunRepo on the given database and collection.
func NewLevelRunRepo(client *mongo.Client, dbName, collectionName string) *LevelRunRepo {
	return &LevelRunRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the index backing per-player history queries.
func (r *LevelRunRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Save inserts or replaces a run.
func (r *LevelRunRepo) Save(run *dmn.LevelRun) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": run.ID}, run, opts); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

// Finish records how a run ended.
func (r *LevelRunRepo) Finish(id uuid.UUID, outcome dmn.Outcome, endedAt time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"outcome": outcome,
			"endedAt": endedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	if res.MatchedCount == 0 {
		return i.ErrLevelRunNotFound
	}
	return nil
}

// ByID retrieves a run by its ID.
func (r *LevelRunRepo) ByID(id uuid.UUID) (*dmn.LevelRun, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var run dmn.LevelRun
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrLevelRunNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &run, nil
}

// ByPlayer lists a player's most recent runs, newest first.
func (r *LevelRunRepo) ByPlayer(playerID uuid.UUID, limit int64) ([]*dmn.LevelRun, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []*dmn.LevelRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("decoding level runs: %w", err)
	}
	return runs, nil
}
