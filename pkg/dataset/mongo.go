package dataset

import (
	"bytes"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coordviz/parcoords/pkg/errors"
)

// MongoSource fetches a dataset from a MongoDB collection of flat documents.
// Each document becomes one record; the synthetic _id field is dropped.
// Documents are re-encoded as relaxed extended JSON, which for flat
// scalar documents is plain JSON, so decoding is shared with the other
// sources and field order is preserved.
type MongoSource struct {
	URI        string
	Database   string
	Collection string
}

// Name describes the collection for logs and errors.
func (s MongoSource) Name() string {
	return fmt.Sprintf("mongodb(%s.%s)", s.Database, s.Collection)
}

// Fetch connects, reads all documents, and returns them as a JSON array.
func (s MongoSource) Fetch(ctx context.Context) ([]byte, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to %s", s.Name())
	}
	defer func() { _ = client.Disconnect(ctx) }()

	cur, err := client.Database(s.Database).Collection(s.Collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query %s", s.Name())
	}
	defer cur.Close(ctx)

	// bson.D preserves document field order
	var docs []bson.D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read %s", s.Name())
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	first := true
	for _, doc := range docs {
		doc = dropID(doc)
		data, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "encode document from %s", s.Name())
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func dropID(doc bson.D) bson.D {
	out := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if e.Key == "_id" {
			continue
		}
		out = append(out, e)
	}
	return out
}
