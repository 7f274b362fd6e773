package service

import (
	"context"
	"time"

	"github.com/Sourasish01/MERN-ChatApp/module/chat/model"
	"github.com/Sourasish01/MERN-ChatApp/tools/ids"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the durable message store backed by MongoDB.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(model.Collection)}
}

// EnsureIndexes creates the participant-pair index used by ListBetween.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "sender_id", Value: 1},
			{Key: "receiver_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
	})
	return errors.Wrap(err, "ensure message indexes")
}

// Save persists a new message and returns the full record.
func (s *Store) Save(ctx context.Context, senderID, receiverID, text, image string) (*model.Message, error) {
	now := time.Now().UTC()
	m := &model.Message{
		MsgID:      ids.GenerateString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Image:      image,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		return nil, errors.Wrap(err, "insert message")
	}
	return m, nil
}

// ListBetween returns all messages exchanged between the two users in
// chronological order, regardless of direction.
func (s *Store) ListBetween(ctx context.Context, userA, userB string) ([]model.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "receiver_id": userB},
		bson.M{"sender_id": userB, "receiver_id": userA},
	}}
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}
	defer cur.Close(ctx)

	msgs := []model.Message{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, errors.Wrap(err, "decode messages")
	}
	return msgs, nil
}
