package trainings

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

const (
	trainingsCollection  = "trainings"
	userTrainingsSubcoll = "user_trainings"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) userTrainings(userID string) *firestore.CollectionRef {
	return r.fs.Collection(trainingsCollection).Doc(userID).Collection(userTrainingsSubcoll)
}

// EnsureRoot creates the per user root document when missing, so that
// the trainings of the user show up in collection listings.
func (r *Repo) EnsureRoot(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainings.ensureRoot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docRef := r.fs.Collection(trainingsCollection).Doc(userID)
	_, err = docRef.Get(ctx)
	if status.Code(err) == codes.NotFound {
		_, err = docRef.Set(ctx, map[string]interface{}{})
		return err
	}
	return err
}

func (r *Repo) Add(ctx context.Context, training Training) (_ *Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainings.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.EnsureRoot(ctx, training.Owner); err != nil {
		return nil, fmt.Errorf("ensure trainings root: %w", err)
	}

	docRef := r.userTrainings(training.Owner).NewDoc()
	if _, err := docRef.Set(ctx, training); err != nil {
		return nil, fmt.Errorf("set training: %w", err)
	}

	training.ID = docRef.ID
	return &training, nil
}

func (r *Repo) Get(ctx context.Context, userID, id string) (_ *Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainings.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.userTrainings(userID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrTrainingNotFound
	}
	if err != nil {
		return nil, err
	}

	var training Training
	if err := doc.DataTo(&training); err != nil {
		return nil, fmt.Errorf("parse training %s: %w", doc.Ref.ID, err)
	}
	training.ID = doc.Ref.ID

	return &training, nil
}

func (r *Repo) ListByOwner(ctx context.Context, userID string) (_ []Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainings.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.collect(r.userTrainings(userID).Documents(ctx))
}

// ListAll iterates trainings of every user. Used by the exercise
// popularity scan.
func (r *Repo) ListAll(ctx context.Context) (_ []Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainings.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.collect(r.fs.CollectionGroup(userTrainingsSubcoll).Documents(ctx))
}

func (r *Repo) collect(iter *firestore.DocumentIterator) ([]Training, error) {
	defer iter.Stop()

	var trainings []Training
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var training Training
		if err := doc.DataTo(&training); err != nil {
			return nil, fmt.Errorf("parse training %s: %w", doc.Ref.ID, err)
		}
		training.ID = doc.Ref.ID
		trainings = append(trainings, training)
	}

	return trainings, nil
}

func (r *Repo) UpdateMean(ctx context.Context, userID, id string, mean int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainings.updateMean")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.userTrainings(userID).Doc(id).Update(ctx, []firestore.Update{
		{Path: "calories_per_hour_mean", Value: mean},
	})
	if status.Code(err) == codes.NotFound {
		return ErrTrainingNotFound
	}
	return err
}

func (r *Repo) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainings.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	_, err = r.userTrainings(userID).Doc(id).Delete(ctx)
	return err
}
