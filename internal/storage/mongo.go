package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/model"
)

type snapshotDoc struct {
	ID        string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo stores the snapshot JSON as one document of a collection.
type Mongo struct {
	coll *mongo.Collection
	key  string
	log  *zap.Logger
}

// NewMongo returns a provider for the document with _id key in coll.
func NewMongo(coll *mongo.Collection, key string, log *zap.Logger) *Mongo {
	if coll == nil {
		panic("nil collection passed to NewMongo")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Mongo{coll: coll, key: key, log: log}
}

func (m *Mongo) Load(ctx context.Context) (model.Snapshot, error) {
	var doc snapshotDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": m.key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Snapshot{}, ErrNotExist
		}
		return model.Snapshot{}, fmt.Errorf("find snapshot %s: %w", m.key, err)
	}
	return decodeDoc(doc)
}

func (m *Mongo) Save(ctx context.Context, snap model.Snapshot) error {
	doc, err := encodeDoc(m.key, snap, time.Now())
	if err != nil {
		return err
	}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": m.key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace snapshot %s: %w", m.key, err)
	}
	m.log.Debug("snapshot saved", zap.String("id", m.key), zap.Int("bytes", len(doc.Payload)))
	return nil
}

func encodeDoc(key string, snap model.Snapshot, now time.Time) (snapshotDoc, error) {
	data, err := Encode(snap)
	if err != nil {
		return snapshotDoc{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return snapshotDoc{ID: key, Payload: string(data), UpdatedAt: now.UTC()}, nil
}

// decodeDoc treats a document without a payload as corrupt rather than as an
// empty snapshot.
func decodeDoc(doc snapshotDoc) (model.Snapshot, error) {
	if doc.Payload == "" {
		return model.Snapshot{}, fmt.Errorf("%w: snapshot %s has no payload", ErrCorrupt, doc.ID)
	}
	return Decode([]byte(doc.Payload))
}
