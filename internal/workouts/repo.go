package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

const (
	workoutsCollection  = "workouts"
	userWorkoutsSubcoll = "user_workouts"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) userWorkouts(userID string) *firestore.CollectionRef {
	return r.fs.Collection(workoutsCollection).Doc(userID).Collection(userWorkoutsSubcoll)
}

func (r *Repo) EnsureRoot(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.ensureRoot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docRef := r.fs.Collection(workoutsCollection).Doc(userID)
	_, err = docRef.Get(ctx)
	if status.Code(err) == codes.NotFound {
		_, err = docRef.Set(ctx, map[string]interface{}{})
		return err
	}
	return err
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.EnsureRoot(ctx, workout.Owner); err != nil {
		return nil, fmt.Errorf("ensure workouts root: %w", err)
	}

	docRef := r.userWorkouts(workout.Owner).NewDoc()
	if _, err := docRef.Set(ctx, workout); err != nil {
		return nil, fmt.Errorf("set workout: %w", err)
	}

	workout.ID = docRef.ID
	return &workout, nil
}

func (r *Repo) ListByOwner(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.collect(r.userWorkouts(userID).Documents(ctx))
}

// ListSince returns the user's workouts dated at or after the given
// moment.
func (r *Repo) ListSince(ctx context.Context, userID string, since time.Time) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.collect(r.userWorkouts(userID).Where("date", ">=", since).Documents(ctx))
}

func (r *Repo) collect(iter *firestore.DocumentIterator) ([]Workout, error) {
	defer iter.Stop()

	var workouts []Workout
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var workout Workout
		if err := doc.DataTo(&workout); err != nil {
			return nil, fmt.Errorf("parse workout %s: %w", doc.Ref.ID, err)
		}
		workout.ID = doc.Ref.ID
		workouts = append(workouts, workout)
	}

	return workouts, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.userWorkouts(userID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return ErrWorkoutNotFound
	}
	if err != nil {
		return err
	}

	_, err = doc.Ref.Delete(ctx)
	return err
}
