package challenges

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/trainmate/trainmate-api/internal/categories"
	"github.com/trainmate/trainmate-api/internal/exercises"
	"github.com/trainmate/trainmate-api/internal/physical"
	"github.com/trainmate/trainmate-api/internal/telemetry/metrics"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/internal/trainings"
	"github.com/trainmate/trainmate-api/internal/workouts"
)

type challengesRepo interface {
	Create(ctx context.Context, userID string, domain Domain, names []string) error
	List(ctx context.Context, userID string, domain Domain) ([]Challenge, error)
	Complete(ctx context.Context, userID string, domain Domain, name string) (bool, error)
}

type physicalLister interface {
	ListSince(ctx context.Context, userID string, since time.Time) ([]physical.Entry, error)
}

type workoutsLister interface {
	ListSince(ctx context.Context, userID string, since time.Time) ([]workouts.Workout, error)
}

type trainingGetter interface {
	Get(ctx context.Context, userID, id string) (*trainings.Training, error)
}

type exerciseGetter interface {
	Get(ctx context.Context, id string) (*exercises.Exercise, error)
}

type categoryGetter interface {
	Get(ctx context.Context, id string) (*categories.Category, error)
}

// Evaluator checks a user's recent history against the challenge
// catalogs and flips the satisfied ones.
type Evaluator struct {
	repo         challengesRepo
	physicalData physicalLister
	workoutData  workoutsLister
	trainings    trainingGetter
	exercises    exerciseGetter
	categories   categoryGetter
	metrics      *metrics.Manager
}

func NewEvaluator(
	repo challengesRepo,
	physicalData physicalLister,
	workoutData workoutsLister,
	trainings trainingGetter,
	exercises exerciseGetter,
	categories categoryGetter,
	metricsManager *metrics.Manager,
) *Evaluator {
	return &Evaluator{
		repo:         repo,
		physicalData: physicalData,
		workoutData:  workoutData,
		trainings:    trainings,
		exercises:    exercises,
		categories:   categories,
		metrics:      metricsManager,
	}
}

// CreateChallenges seeds both challenge subcollections for the user.
// A domain that already holds challenges is left untouched, so
// repeated profile saves never reset unlocked state.
func (e *Evaluator) CreateChallenges(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var errs error
	for _, seed := range []struct {
		domain Domain
		names  []string
	}{
		{DomainPhysical, physicalChallengeNames()},
		{DomainWorkouts, workoutsChallengeNames()},
	} {
		existing, err := e.repo.List(ctx, userID, seed.domain)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("list %s challenges: %w", seed.domain, err))
			continue
		}
		if len(existing) > 0 {
			continue
		}
		if err := e.repo.Create(ctx, userID, seed.domain, seed.names); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("create %s challenges: %w", seed.domain, err))
		}
	}

	return errs
}

// CheckPhysical evaluates the body measurement challenges against the
// windows ending at the given date. Reports whether the evaluation ran
// through; failures are logged, never propagated.
func (e *Evaluator) CheckPhysical(ctx context.Context, userID string, date time.Time) bool {
	if err := e.checkPhysical(ctx, userID, date); err != nil {
		log.Errorf("check physical challenges for user %s: %s", userID, err)
		return false
	}
	return true
}

func (e *Evaluator) checkPhysical(ctx context.Context, userID string, date time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.checkPhysical")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	history, err := e.physicalHistory(ctx, userID, date)
	if err != nil {
		return err
	}

	existing, err := e.repo.List(ctx, userID, DomainPhysical)
	if err != nil {
		return fmt.Errorf("list physical challenges: %w", err)
	}

	defs := make(map[string]PhysicalDefinition)
	for _, def := range PhysicalCatalog() {
		defs[def.Name] = def
	}

	var errs error
	for _, challenge := range existing {
		if challenge.State {
			continue
		}
		def, ok := defs[challenge.Name]
		if !ok {
			log.Warnf("user %s has unknown physical challenge %q", userID, challenge.Name)
			continue
		}
		if !def.Satisfied(*history) {
			continue
		}
		updated, err := e.repo.Complete(ctx, userID, DomainPhysical, challenge.Name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("complete challenge %q: %w", challenge.Name, err))
			continue
		}
		if updated {
			e.metrics.CounterChallengesUnlocked.WithLabelValues(string(DomainPhysical)).Inc()
		}
	}

	return errs
}

func (e *Evaluator) physicalHistory(ctx context.Context, userID string, date time.Time) (*PhysicalHistory, error) {
	entries60, err := e.physicalData.ListSince(ctx, userID, date.AddDate(0, 0, -60))
	if err != nil {
		return nil, fmt.Errorf("list physical data: %w", err)
	}
	sortEntriesByDate(entries60)

	history := &PhysicalHistory{
		EntriesLast60: len(entries60),
	}
	since30 := date.AddDate(0, 0, -30)
	since14 := date.AddDate(0, 0, -14)
	for _, entry := range entries60 {
		if !entry.Date.Before(since30) {
			history.Entries30 = append(history.Entries30, entry)
		}
		if !entry.Date.Before(since14) {
			history.Entries14 = append(history.Entries14, entry)
		}
	}

	return history, nil
}

// CheckWorkouts evaluates the workout history challenges over the last
// 30 days. Reports whether the evaluation ran through; failures are
// logged, never propagated.
func (e *Evaluator) CheckWorkouts(ctx context.Context, userID string) bool {
	if err := e.checkWorkouts(ctx, userID); err != nil {
		log.Errorf("check workout challenges for user %s: %s", userID, err)
		return false
	}
	return true
}

func (e *Evaluator) checkWorkouts(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.checkWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	recent, err := e.workoutData.ListSince(ctx, userID, time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return fmt.Errorf("list workouts: %w", err)
	}
	if len(recent) == 0 {
		return nil
	}

	summary, err := e.workoutsSummary(ctx, userID, recent)
	if err != nil {
		return err
	}

	existing, err := e.repo.List(ctx, userID, DomainWorkouts)
	if err != nil {
		return fmt.Errorf("list workout challenges: %w", err)
	}

	defs := make(map[string]WorkoutsDefinition)
	for _, def := range WorkoutsCatalog() {
		defs[def.Name] = def
	}

	var errs error
	for _, challenge := range existing {
		if challenge.State {
			continue
		}
		def, ok := defs[challenge.Name]
		if !ok {
			log.Warnf("user %s has unknown workout challenge %q", userID, challenge.Name)
			continue
		}
		if !def.Satisfied(*summary) {
			continue
		}
		updated, err := e.repo.Complete(ctx, userID, DomainWorkouts, challenge.Name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("complete challenge %q: %w", challenge.Name, err))
			continue
		}
		if updated {
			e.metrics.CounterChallengesUnlocked.WithLabelValues(string(DomainWorkouts)).Inc()
		}
	}

	return errs
}

// workoutsSummary resolves each workout through its training to the
// exercises and their categories. Dangling references degrade the
// summary instead of failing it.
func (e *Evaluator) workoutsSummary(ctx context.Context, userID string, recent []workouts.Workout) (*WorkoutsSummary, error) {
	summary := &WorkoutsSummary{
		Workouts:         len(recent),
		CategoryWorkouts: make(map[string]int),
	}

	coaches := make(map[string]struct{})
	allExercises := make(map[string]struct{})

	for _, workout := range recent {
		summary.TotalCalories += workout.TotalCalories
		summary.TotalDurationMin += workout.Duration
		if workout.Duration > summary.LongestDurationMin {
			summary.LongestDurationMin = workout.Duration
		}
		if workout.Coach != "" {
			coaches[workout.Coach] = struct{}{}
		}

		training, err := e.trainings.Get(ctx, userID, workout.TrainingID)
		if errors.Is(err, trainings.ErrTrainingNotFound) {
			log.Warnf("workout %s references unknown training %s", workout.ID, workout.TrainingID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get training %s: %w", workout.TrainingID, err)
		}

		workoutCategories := make(map[string]struct{})
		for _, exerciseID := range training.Exercises {
			allExercises[exerciseID] = struct{}{}

			exercise, err := e.exercises.Get(ctx, exerciseID)
			if errors.Is(err, exercises.ErrExerciseNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("get exercise %s: %w", exerciseID, err)
			}
			if exercise.CategoryID == "" {
				continue
			}

			category, err := e.categories.Get(ctx, exercise.CategoryID)
			if errors.Is(err, categories.ErrCategoryNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("get category %s: %w", exercise.CategoryID, err)
			}
			workoutCategories[category.Name] = struct{}{}
		}

		for name := range workoutCategories {
			summary.CategoryWorkouts[name]++
		}
	}

	summary.DistinctCoaches = len(coaches)
	summary.DistinctExercises = len(allExercises)

	return summary, nil
}

func physicalChallengeNames() []string {
	defs := PhysicalCatalog()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

func workoutsChallengeNames() []string {
	defs := WorkoutsCatalog()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

func sortEntriesByDate(entries []physical.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
