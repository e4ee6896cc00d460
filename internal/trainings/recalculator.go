package trainings

import (
	"context"
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/trainmate/trainmate-api/internal/exercises"
	"github.com/trainmate/trainmate-api/internal/telemetry/metrics"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

type trainingsUpdater interface {
	ListByOwner(ctx context.Context, userID string) ([]Training, error)
	UpdateMean(ctx context.Context, userID, id string, mean int) error
}

type exerciseGetter interface {
	Get(ctx context.Context, id string) (*exercises.Exercise, error)
}

// Recalculator refreshes the stored calorie per hour mean of every
// training referencing a changed exercise.
type Recalculator struct {
	trainings trainingsUpdater
	exercises exerciseGetter
	metrics   *metrics.Manager
}

func NewRecalculator(
	trainings trainingsUpdater,
	exercises exerciseGetter,
	metricsManager *metrics.Manager,
) *Recalculator {
	return &Recalculator{
		trainings: trainings,
		exercises: exercises,
		metrics:   metricsManager,
	}
}

// Recalculate reports whether all affected trainings were refreshed.
// Failures are logged, never propagated, so a calorie rate edit
// succeeds even when the derived means cannot be refreshed right away.
func (r *Recalculator) Recalculate(ctx context.Context, userID, exerciseID string) bool {
	if err := r.recalculate(ctx, userID, exerciseID); err != nil {
		log.Errorf("recalculate training means for user %s, exercise %s: %s", userID, exerciseID, err)
		return false
	}
	return true
}

func (r *Recalculator) recalculate(ctx context.Context, userID, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "trainings.recalculate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	trainings, err := r.trainings.ListByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("list trainings: %w", err)
	}

	var errs error
	for _, training := range trainings {
		if !training.References(exerciseID) {
			continue
		}

		mean, err := r.mean(ctx, training)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("training %s: %w", training.ID, err))
			continue
		}

		if err := r.trainings.UpdateMean(ctx, userID, training.ID, mean); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("update training %s: %w", training.ID, err))
			continue
		}
		r.metrics.CounterMeanRecalculations.Inc()
	}

	return errs
}

// mean averages the burn rates of the training's exercises. Exercises
// that no longer resolve contribute nothing to the sum but stay in the
// denominator.
func (r *Recalculator) mean(ctx context.Context, training Training) (int, error) {
	if len(training.Exercises) == 0 {
		return 0, nil
	}

	var sum float64
	for _, exerciseID := range training.Exercises {
		exercise, err := r.exercises.Get(ctx, exerciseID)
		if errors.Is(err, exercises.ErrExerciseNotFound) {
			log.Warnf("training %s references unknown exercise %s", training.ID, exerciseID)
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("get exercise %s: %w", exerciseID, err)
		}
		sum += exercise.CaloriesPerHour
	}

	return int(math.Round(sum / float64(len(training.Exercises)))), nil
}
