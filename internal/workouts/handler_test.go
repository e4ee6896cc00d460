package workouts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/trainings"
)

type workoutsRepoMock struct {
	workouts []Workout
}

var _ workoutsRepo = (*workoutsRepoMock)(nil)

func (m *workoutsRepoMock) Add(_ context.Context, workout Workout) (*Workout, error) {
	workout.ID = "w1"
	m.workouts = append(m.workouts, workout)
	return &workout, nil
}

func (m *workoutsRepoMock) ListByOwner(_ context.Context, userID string) ([]Workout, error) {
	var list []Workout
	for _, w := range m.workouts {
		if w.Owner == userID {
			list = append(list, w)
		}
	}
	return list, nil
}

func (m *workoutsRepoMock) ListSince(_ context.Context, userID string, since time.Time) ([]Workout, error) {
	var list []Workout
	for _, w := range m.workouts {
		if w.Owner == userID && !w.Date.Before(since) {
			list = append(list, w)
		}
	}
	return list, nil
}

func (m *workoutsRepoMock) Delete(_ context.Context, userID, id string) error {
	for i, w := range m.workouts {
		if w.Owner == userID && w.ID == id {
			m.workouts = append(m.workouts[:i], m.workouts[i+1:]...)
			return nil
		}
	}
	return ErrWorkoutNotFound
}

type trainingGetterMock struct {
	trainings map[string]*trainings.Training
}

var _ trainingGetter = (*trainingGetterMock)(nil)

func (m *trainingGetterMock) Get(_ context.Context, _, id string) (*trainings.Training, error) {
	training, ok := m.trainings[id]
	if !ok {
		return nil, trainings.ErrTrainingNotFound
	}
	return training, nil
}

type challengesCheckerMock struct {
	checkedUsers []string
}

var _ challengesChecker = (*challengesCheckerMock)(nil)

func (m *challengesCheckerMock) CheckWorkouts(_ context.Context, userID string) bool {
	m.checkedUsers = append(m.checkedUsers, userID)
	return true
}

func newWorkoutsTestHandler(trainingMean int) (*Handler, *workoutsRepoMock, *challengesCheckerMock) {
	repo := &workoutsRepoMock{}
	checker := &challengesCheckerMock{}
	getter := &trainingGetterMock{
		trainings: map[string]*trainings.Training{
			"t1": {ID: "t1", Owner: "user1", Name: "Push Day", CaloriesPerHourMean: trainingMean},
		},
	}
	return NewHandler(repo, getter, checker), repo, checker
}

func TestWorkoutsHandleAdd_caloriesSnapshot(t *testing.T) {
	handler, repo, checker := newWorkoutsTestHandler(450)

	body := `{"training_id":"t1","duration":80,"coach":"Coach1","date":"2026-08-30"}`
	req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(body))
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "user1"))
	rec := httptest.NewRecorder()

	handler.HandleAdd(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.workouts, 1)

	// 450 cal/h over 80 min = 600
	assert.Equal(t, 600, repo.workouts[0].TotalCalories)
	assert.Equal(t, []string{"user1"}, checker.checkedUsers)
}

func TestWorkoutsHandleAdd_unknownTraining(t *testing.T) {
	handler, repo, _ := newWorkoutsTestHandler(450)

	body := `{"training_id":"nope","duration":60}`
	req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(body))
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "user1"))
	rec := httptest.NewRecorder()

	handler.HandleAdd(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.workouts)
}

func TestWorkoutsHandleAdd_invalidDuration(t *testing.T) {
	handler, _, _ := newWorkoutsTestHandler(450)

	body := `{"training_id":"t1","duration":0}`
	req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(body))
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "user1"))
	rec := httptest.NewRecorder()

	handler.HandleAdd(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkoutsHandleList_since(t *testing.T) {
	handler, repo, _ := newWorkoutsTestHandler(450)
	repo.workouts = []Workout{
		{ID: "w1", Owner: "user1", Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "w2", Owner: "user1", Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "w3", Owner: "user2", Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)},
	}

	req := httptest.NewRequest(http.MethodGet, "/workouts?since=2026-08-15", nil)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "user1"))
	rec := httptest.NewRecorder()

	handler.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "w2")
	assert.NotContains(t, rec.Body.String(), "w1")
	assert.NotContains(t, rec.Body.String(), "w3")
}

func TestTotalCalories(t *testing.T) {
	// stored totals are snapshots: later rate edits never rewrite them
	assert.Equal(t, 450, TotalCalories(450, 60))
	assert.Equal(t, 600, TotalCalories(450, 80))
	assert.Equal(t, 225, TotalCalories(450, 30))
	assert.Equal(t, 8, TotalCalories(450, 1))
	assert.Equal(t, 0, TotalCalories(0, 90))
}
