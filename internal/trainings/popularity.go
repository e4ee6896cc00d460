package trainings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/exercises"
	"github.com/trainmate/trainmate-api/internal/telemetry/metrics"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

const popularExercisesLimit = 5

type trainingsLister interface {
	ListAll(ctx context.Context) ([]Training, error)
}

type PopularExercise struct {
	ExerciseID string `json:"exercise_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// Ranker computes the most referenced public exercises across all
// user trainings.
type Ranker struct {
	trainings trainingsLister
	exercises exerciseGetter
	metrics   *metrics.Manager
}

func NewRanker(
	trainings trainingsLister,
	exercises exerciseGetter,
	metricsManager *metrics.Manager,
) *Ranker {
	return &Ranker{
		trainings: trainings,
		exercises: exercises,
		metrics:   metricsManager,
	}
}

// PopularExercises returns the top referenced public exercises, most
// referenced first, ties broken by exercise id. Every reference counts,
// including repeated references from the same training or user. Any
// failure yields an empty list.
func (r *Ranker) PopularExercises(ctx context.Context) []PopularExercise {
	popular, err := r.popularExercises(ctx)
	if err != nil {
		log.Errorf("popular exercises scan: %s", err)
		return []PopularExercise{}
	}
	if popular == nil {
		return []PopularExercise{}
	}
	return popular
}

func (r *Ranker) popularExercises(ctx context.Context) (_ []PopularExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "trainings.popularExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.metrics.CounterPopularityScans.Inc()

	trainings, err := r.trainings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}

	counts := make(map[string]int)
	for _, training := range trainings {
		for _, exerciseID := range training.Exercises {
			counts[exerciseID]++
		}
	}

	type rankedExercise struct {
		id    string
		name  string
		count int
	}

	var ranked []rankedExercise
	for exerciseID, count := range counts {
		exercise, err := r.exercises.Get(ctx, exerciseID)
		if errors.Is(err, exercises.ErrExerciseNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get exercise %s: %w", exerciseID, err)
		}
		if !exercise.Public {
			continue
		}
		ranked = append(ranked, rankedExercise{id: exerciseID, name: exercise.Name, count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].id < ranked[j].id
	})

	if len(ranked) > popularExercisesLimit {
		ranked = ranked[:popularExercisesLimit]
	}

	popular := make([]PopularExercise, 0, len(ranked))
	for _, re := range ranked {
		popular = append(popular, PopularExercise{
			ExerciseID: re.id,
			Name:       re.name,
			Count:      re.count,
		})
	}

	return popular, nil
}
