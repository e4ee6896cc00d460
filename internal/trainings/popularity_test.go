package trainings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmate/trainmate-api/internal/exercises"
	"github.com/trainmate/trainmate-api/internal/telemetry/metrics"
)

func TestPopularExercises(t *testing.T) {
	trainingsRepo := newTrainingsRepoMock(
		Training{ID: "t1", Owner: "user1", Exercises: []string{"ex1", "ex2", "ex1"}},
		Training{ID: "t2", Owner: "user2", Exercises: []string{"ex1", "ex3"}},
		Training{ID: "t3", Owner: "user3", Exercises: []string{"ex2", "private1"}},
	)
	exercisesRepo := newExercisesRepoMock(
		exercises.Exercise{ID: "ex1", Name: "Squat", Public: true},
		exercises.Exercise{ID: "ex2", Name: "Deadlift", Public: true},
		exercises.Exercise{ID: "ex3", Name: "Bench Press", Public: true},
		exercises.Exercise{ID: "private1", Name: "Secret Routine", Public: false},
	)

	ranker := NewRanker(trainingsRepo, exercisesRepo, metrics.NewTestManager())

	popular := ranker.PopularExercises(context.Background())

	// repeated references count, private exercises never show up
	require.Equal(t, []PopularExercise{
		{ExerciseID: "ex1", Name: "Squat", Count: 3},
		{ExerciseID: "ex2", Name: "Deadlift", Count: 2},
		{ExerciseID: "ex3", Name: "Bench Press", Count: 1},
	}, popular)
}

func TestPopularExercises_tieBreakAndLimit(t *testing.T) {
	trainingsRepo := newTrainingsRepoMock(
		Training{ID: "t1", Owner: "user1", Exercises: []string{"exF", "exE", "exD", "exC", "exB", "exA"}},
	)
	exercisesRepo := newExercisesRepoMock(
		exercises.Exercise{ID: "exA", Name: "A", Public: true},
		exercises.Exercise{ID: "exB", Name: "B", Public: true},
		exercises.Exercise{ID: "exC", Name: "C", Public: true},
		exercises.Exercise{ID: "exD", Name: "D", Public: true},
		exercises.Exercise{ID: "exE", Name: "E", Public: true},
		exercises.Exercise{ID: "exF", Name: "F", Public: true},
	)

	ranker := NewRanker(trainingsRepo, exercisesRepo, metrics.NewTestManager())

	popular := ranker.PopularExercises(context.Background())

	// all tied at one reference, ordered by id, capped at five
	require.Len(t, popular, 5)
	assert.Equal(t, "exA", popular[0].ExerciseID)
	assert.Equal(t, "exE", popular[4].ExerciseID)
}

func TestPopularExercises_danglingRefSkipped(t *testing.T) {
	trainingsRepo := newTrainingsRepoMock(
		Training{ID: "t1", Owner: "user1", Exercises: []string{"ex1", "gone"}},
	)
	exercisesRepo := newExercisesRepoMock(
		exercises.Exercise{ID: "ex1", Name: "Squat", Public: true},
	)

	ranker := NewRanker(trainingsRepo, exercisesRepo, metrics.NewTestManager())

	popular := ranker.PopularExercises(context.Background())

	require.Len(t, popular, 1)
	assert.Equal(t, "ex1", popular[0].ExerciseID)
}

func TestPopularExercises_scanFailure(t *testing.T) {
	trainingsRepo := newTrainingsRepoMock()
	trainingsRepo.listErr = errors.New("firestore down")

	ranker := NewRanker(trainingsRepo, newExercisesRepoMock(), metrics.NewTestManager())

	popular := ranker.PopularExercises(context.Background())

	require.NotNil(t, popular)
	assert.Empty(t, popular)
}

func TestPopularExercises_noTrainings(t *testing.T) {
	ranker := NewRanker(newTrainingsRepoMock(), newExercisesRepoMock(), metrics.NewTestManager())

	popular := ranker.PopularExercises(context.Background())

	require.NotNil(t, popular)
	assert.Empty(t, popular)
}
