package water

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
	waterIntakesCollection  = "water_intakes"
	userWaterIntakesSubcoll = "user_water_intakes"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) userIntakes(userID string) *firestore.CollectionRef {
	return r.fs.Collection(waterIntakesCollection).Doc(userID).Collection(userWaterIntakesSubcoll)
}

// AddQuantity adds the given quantity to the day's accumulated intake
// and returns the new total.
func (r *Repo) AddQuantity(ctx context.Context, userID string, date time.Time, quantity int) (_ *Intake, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.water.addQuantity")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rootRef := r.fs.Collection(waterIntakesCollection).Doc(userID)
	if _, err := rootRef.Get(ctx); status.Code(err) == codes.NotFound {
		if _, err := rootRef.Set(ctx, map[string]interface{}{}); err != nil {
			return nil, fmt.Errorf("ensure water intakes root: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	intake := Intake{Date: date, Quantity: quantity}
	docRef := r.userIntakes(userID).Doc(intake.DocID())

	doc, err := docRef.Get(ctx)
	switch {
	case status.Code(err) == codes.NotFound:
		// first intake of the day
	case err != nil:
		return nil, err
	default:
		var existing Intake
		if err := doc.DataTo(&existing); err != nil {
			return nil, fmt.Errorf("parse water intake %s: %w", doc.Ref.ID, err)
		}
		intake.Quantity += existing.Quantity
	}

	if _, err := docRef.Set(ctx, intake); err != nil {
		return nil, fmt.Errorf("set water intake: %w", err)
	}

	return &intake, nil
}

func (r *Repo) GetForDay(ctx context.Context, userID string, date time.Time) (_ *Intake, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.water.getForDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.userIntakes(userID).Doc(date.Format("2006-01-02")).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &Intake{Date: date, Quantity: 0}, nil
	}
	if err != nil {
		return nil, err
	}

	var intake Intake
	if err := doc.DataTo(&intake); err != nil {
		return nil, fmt.Errorf("parse water intake %s: %w", doc.Ref.ID, err)
	}

	return &intake, nil
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Intake, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.water.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	iter := r.userIntakes(userID).Documents(ctx)
	defer iter.Stop()

	var intakes []Intake
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var intake Intake
		if err := doc.DataTo(&intake); err != nil {
			return nil, fmt.Errorf("parse water intake %s: %w", doc.Ref.ID, err)
		}
		intakes = append(intakes, intake)
	}

	return intakes, nil
}
