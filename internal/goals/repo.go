package goals

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
	goalsCollection  = "goals"
	userGoalsSubcoll = "user_goals"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) userGoals(userID string) *firestore.CollectionRef {
	return r.fs.Collection(goalsCollection).Doc(userID).Collection(userGoalsSubcoll)
}

func (r *Repo) Add(ctx context.Context, userID string, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rootRef := r.fs.Collection(goalsCollection).Doc(userID)
	if _, err := rootRef.Get(ctx); status.Code(err) == codes.NotFound {
		if _, err := rootRef.Set(ctx, map[string]interface{}{}); err != nil {
			return nil, fmt.Errorf("ensure goals root: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	docRef := r.userGoals(userID).NewDoc()
	if _, err := docRef.Set(ctx, goal); err != nil {
		return nil, fmt.Errorf("set goal: %w", err)
	}

	goal.ID = docRef.ID
	return &goal, nil
}

func (r *Repo) Get(ctx context.Context, userID, id string) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.userGoals(userID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	var goal Goal
	if err := doc.DataTo(&goal); err != nil {
		return nil, fmt.Errorf("parse goal %s: %w", doc.Ref.ID, err)
	}
	goal.ID = doc.Ref.ID

	return &goal, nil
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	iter := r.userGoals(userID).Documents(ctx)
	defer iter.Stop()

	var goals []Goal
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var goal Goal
		if err := doc.DataTo(&goal); err != nil {
			return nil, fmt.Errorf("parse goal %s: %w", doc.Ref.ID, err)
		}
		goal.ID = doc.Ref.ID
		goals = append(goals, goal)
	}

	return goals, nil
}

func (r *Repo) Complete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	_, err = r.userGoals(userID).Doc(id).Update(ctx, []firestore.Update{
		{Path: "completed", Value: true},
	})
	return err
}

func (r *Repo) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	_, err = r.userGoals(userID).Doc(id).Delete(ctx)
	return err
}
