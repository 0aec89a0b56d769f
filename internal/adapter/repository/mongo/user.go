package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vadimbarashkov/microservices/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDoc keeps the exercise log embedded in the user document, in append order.
type userDoc struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Log       []string  `bson:"log"`
	CreatedAt time.Time `bson:"created_at"`
}

func (u *userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:       u.ID,
		Username: u.Username,
		Log:      u.Log,
	}
}

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: db.Collection(usersCollection),
		now:  time.Now,
	}
}

func (r *UserRepository) Save(ctx context.Context, id, username string) (*entity.User, error) {
	const op = "adapter.repository.mongo.UserRepository.Save"

	doc := userDoc{
		ID:        id,
		Username:  username,
		Log:       []string{},
		CreatedAt: r.now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%s: failed to insert into users collection: %w", op, err)
	}

	return doc.toEntity(), nil
}

func (r *UserRepository) RetrieveByID(ctx context.Context, id string) (*entity.User, error) {
	const op = "adapter.repository.mongo.UserRepository.RetrieveByID"

	var doc userDoc

	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to find document in users collection: %w", op, err)
	}

	return doc.toEntity(), nil
}

func (r *UserRepository) RetrieveAll(ctx context.Context) ([]*entity.User, error) {
	const op = "adapter.repository.mongo.UserRepository.RetrieveAll"

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"log": 0})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to find documents in users collection: %w", op, err)
	}

	var docs []userDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: failed to decode users: %w", op, err)
	}

	users := make([]*entity.User, 0, len(docs))
	for i := range docs {
		u := docs[i].toEntity()
		u.Log = nil
		users = append(users, u)
	}

	return users, nil
}

func (r *UserRepository) AppendLog(ctx context.Context, userID, exerciseID string) error {
	const op = "adapter.repository.mongo.UserRepository.AppendLog"

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"log": exerciseID}})
	if err != nil {
		return fmt.Errorf("%s: failed to update users collection: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	return nil
}
