package service

import (
	"context"
	"time"

	"github.com/Sourasish01/MERN-ChatApp/module/user/model"
	"github.com/Sourasish01/MERN-ChatApp/tools/ids"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrEmailExists is returned when an insert trips the unique email index.
var ErrEmailExists = errors.New("email already registered")

// Store is the user directory backed by MongoDB.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(model.Collection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "ensure user indexes")
}

// Create inserts a new account with an already-hashed password.
func (s *Store) Create(ctx context.Context, email, fullName, passwordHash string) (*model.User, error) {
	now := time.Now().UTC()
	u := &model.User{
		UserID:       ids.GenerateString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		// the unique index is the authority; a pre-insert lookup can always
		// race with a concurrent signup
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, errors.Wrap(err, "insert user")
	}
	return u, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Store) FindByID(ctx context.Context, userID string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"user_id": userID})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &u, nil
}

// UpdateAvatar stores a new avatar URL and returns the updated record.
func (s *Store) UpdateAvatar(ctx context.Context, userID, faceURL string) (*model.User, error) {
	after := options.After
	var u model.User
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"face_url": faceURL, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update avatar")
	}
	return &u, nil
}

// ListOthers returns every user except selfID, for the sidebar roster.
func (s *Store) ListOthers(ctx context.Context, selfID string) ([]model.User, error) {
	cur, err := s.coll.Find(ctx, bson.M{"user_id": bson.M{"$ne": selfID}})
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer cur.Close(ctx)

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}
