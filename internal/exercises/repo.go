package exercises

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

const exercisesCollection = "exercises"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docRef := r.fs.Collection(exercisesCollection).NewDoc()
	if _, err := docRef.Set(ctx, exercise); err != nil {
		return nil, fmt.Errorf("set exercise: %w", err)
	}

	exercise.ID = docRef.ID
	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.fs.Collection(exercisesCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	var exercise Exercise
	if err := doc.DataTo(&exercise); err != nil {
		return nil, fmt.Errorf("parse exercise %s: %w", doc.Ref.ID, err)
	}
	exercise.ID = doc.Ref.ID

	return &exercise, nil
}

// ListVisible returns all public exercises plus the private ones owned
// by the given user.
func (r *Repo) ListVisible(ctx context.Context, owner string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listVisible")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	public, err := r.listWhere(ctx, r.fs.Collection(exercisesCollection).Where("public", "==", true))
	if err != nil {
		return nil, err
	}

	owned, err := r.listWhere(ctx, r.fs.Collection(exercisesCollection).
		Where("owner", "==", owner).
		Where("public", "==", false),
	)
	if err != nil {
		return nil, err
	}

	return append(public, owned...), nil
}

func (r *Repo) ListPublic(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listPublic")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.listWhere(ctx, r.fs.Collection(exercisesCollection).Where("public", "==", true))
}

func (r *Repo) ListByCategory(ctx context.Context, owner, categoryID string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listByCategory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := r.listWhere(ctx, r.fs.Collection(exercisesCollection).Where("category_id", "==", categoryID))
	if err != nil {
		return nil, err
	}

	var visible []Exercise
	for _, exercise := range all {
		if exercise.Public || exercise.Owner == owner {
			visible = append(visible, exercise)
		}
	}
	return visible, nil
}

func (r *Repo) listWhere(ctx context.Context, query firestore.Query) ([]Exercise, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var exercises []Exercise
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var exercise Exercise
		if err := doc.DataTo(&exercise); err != nil {
			return nil, fmt.Errorf("parse exercise %s: %w", doc.Ref.ID, err)
		}
		exercise.ID = doc.Ref.ID
		exercises = append(exercises, exercise)
	}

	return exercises, nil
}

func (r *Repo) Update(ctx context.Context, owner, id string, updates []firestore.Update) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if exercise.Owner != owner {
		return ErrExerciseNotFound
	}

	_, err = r.fs.Collection(exercisesCollection).Doc(id).Update(ctx, updates)
	return err
}

func (r *Repo) Delete(ctx context.Context, owner, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if exercise.Owner != owner {
		return ErrExerciseNotFound
	}

	_, err = r.fs.Collection(exercisesCollection).Doc(id).Delete(ctx)
	return err
}
