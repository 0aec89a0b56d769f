package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/vadimbarashkov/microservices/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type exerciseDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Description string    `bson:"description"`
	Duration    int       `bson:"duration"`
	Date        time.Time `bson:"date"`
}

func (e *exerciseDoc) toEntity() *entity.Exercise {
	return &entity.Exercise{
		ID:          e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        entity.DateOf(e.Date),
	}
}

type ExerciseRepository struct {
	coll *mongo.Collection
}

func NewExerciseRepository(db *mongo.Database) *ExerciseRepository {
	return &ExerciseRepository{coll: db.Collection(exercisesCollection)}
}

func (r *ExerciseRepository) Save(ctx context.Context, exercise *entity.Exercise) (*entity.Exercise, error) {
	const op = "adapter.repository.mongo.ExerciseRepository.Save"

	doc := exerciseDoc{
		ID:          exercise.ID,
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        entity.DateOf(exercise.Date),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%s: failed to insert into exercises collection: %w", op, err)
	}

	return doc.toEntity(), nil
}

func (r *ExerciseRepository) RetrieveByIDs(ctx context.Context, ids []string) ([]*entity.Exercise, error) {
	const op = "adapter.repository.mongo.ExerciseRepository.RetrieveByIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to find documents in exercises collection: %w", op, err)
	}

	var docs []exerciseDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: failed to decode exercises: %w", op, err)
	}

	exercises := make([]*entity.Exercise, 0, len(docs))
	for i := range docs {
		exercises = append(exercises, docs[i].toEntity())
	}

	return exercises, nil
}
