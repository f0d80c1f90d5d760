package drafts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

// MongoStore keeps one document per draft, keyed by the draft ID.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

type draftDocument struct {
	ID        string         `bson:"_id"`
	FormID    string         `bson:"form_id"`
	Step      string         `bson:"step"`
	Visited   []string       `bson:"visited,omitempty"`
	Data      map[string]any `bson:"data"`
	Touched   []string       `bson:"touched,omitempty"`
	Submitted bool           `bson:"submitted"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

func toDocument(d Draft) draftDocument {
	data := make(map[string]any, len(d.Data))
	for field, v := range d.Data {
		data[field] = v.Any()
	}
	return draftDocument{
		ID:        d.ID,
		FormID:    d.FormID,
		Step:      d.Step,
		Visited:   d.Visited,
		Data:      data,
		Touched:   d.Touched,
		Submitted: d.Submitted,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromDocument(doc draftDocument) (Draft, error) {
	data, err := validator.FormDataOf(doc.Data)
	if err != nil {
		return Draft{}, errors.Join(ErrCorruptedDraft, err)
	}
	return Draft{
		ID:        doc.ID,
		FormID:    doc.FormID,
		Step:      doc.Step,
		Visited:   doc.Visited,
		Data:      data,
		Touched:   doc.Touched,
		Submitted: doc.Submitted,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, d Draft) error {
	if err := validateDraft(d); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: d.ID}}, toDocument(d), options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrFailedToSaveDraft, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (Draft, error) {
	var doc draftDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return Draft{}, errors.Join(ErrFailedToLoadDraft, err)
	}
	return fromDocument(doc)
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Join(ErrFailedToDeleteDraft, err)
	}
	if res.DeletedCount == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// ConnectMongo connects and pings, retrying RetryAttempts times.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)

	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnectMongo, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, errors.Join(ErrFailedToConnectMongo, lastErr)
}

// MongoHealthcheck pings the client.
func MongoHealthcheck(client *mongo.Client) Healthcheck {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
