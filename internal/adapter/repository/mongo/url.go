package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vadimbarashkov/microservices/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type urlDoc struct {
	ID          int64     `bson:"_id"`
	OriginalURL string    `bson:"original_url"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (u *urlDoc) toEntity() *entity.URL {
	return &entity.URL{
		ID:          u.ID,
		OriginalURL: u.OriginalURL,
		CreatedAt:   u.CreatedAt,
	}
}

type URLRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewURLRepository(db *mongo.Database) *URLRepository {
	return &URLRepository{
		coll: db.Collection(urlsCollection),
		now:  time.Now,
	}
}

func (r *URLRepository) Save(ctx context.Context, id int64, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.mongo.URLRepository.Save"

	doc := urlDoc{
		ID:          id,
		OriginalURL: originalURL,
		CreatedAt:   r.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls collection: %w", op, err)
	}

	return doc.toEntity(), nil
}

func (r *URLRepository) RetrieveByID(ctx context.Context, id int64) (*entity.URL, error) {
	const op = "adapter.repository.mongo.URLRepository.RetrieveByID"

	url, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

func (r *URLRepository) RetrieveByOriginalURL(ctx context.Context, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.mongo.URLRepository.RetrieveByOriginalURL"

	url, err := r.findOne(ctx, bson.M{"original_url": originalURL})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

func (r *URLRepository) findOne(ctx context.Context, filter bson.M) (*entity.URL, error) {
	var doc urlDoc

	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrURLNotFound
		}

		return nil, fmt.Errorf("failed to find document in urls collection: %w", err)
	}

	return doc.toEntity(), nil
}
