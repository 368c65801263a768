package archive

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection is the collection records are stored in.
const DefaultCollection = "exports"

// Mongo stores records in a MongoDB collection with a unique index on the
// export number.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord stores the seed as decimal text; BSON has no unsigned
// 64-bit integer.
type mongoRecord struct {
	Record `bson:",inline"`
	Seed   string `bson:"seed"`
}

// OpenMongo connects to uri and prepares the collection in database.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("archive: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("archive: ping: %w", err)
	}

	coll := client.Database(database).Collection(DefaultCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("archive: create index: %w", err)
	}
	return &Mongo{client: client, coll: coll}, nil
}

// Next returns one more than the highest recorded number.
func (m *Mongo) Next(ctx context.Context) (int, error) {
	var last mongoRecord
	err := m.coll.FindOne(ctx, bson.D{},
		options.FindOne().SetSort(bson.D{{Key: "number", Value: -1}})).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Number + 1, nil
}

// Record inserts rec.
func (m *Mongo) Record(ctx context.Context, rec *Record) error {
	if err := prepare(ctx, m, rec); err != nil {
		return err
	}
	_, err := m.coll.InsertOne(ctx, mongoRecord{Record: *rec, Seed: strconv.FormatUint(rec.Seed, 10)})
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

// Get returns a record by number.
func (m *Mongo) Get(ctx context.Context, number int) (Record, error) {
	var mr mongoRecord
	err := m.coll.FindOne(ctx, bson.D{{Key: "number", Value: number}}).Decode(&mr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return mr.record()
}

// List returns records newest first.
func (m *Mongo) List(ctx context.Context, limit int) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var rows []mongoRecord
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for _, mr := range rows {
		r, err := mr.record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}

func (mr mongoRecord) record() (Record, error) {
	r := mr.Record
	seed, err := strconv.ParseUint(mr.Seed, 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("archive: seed %q: %w", mr.Seed, err)
	}
	r.Seed = seed
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

var _ Store = (*Mongo)(nil)
