package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/internal/trainings"
	"github.com/trainmate/trainmate-api/pkg"
)

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	ListByOwner(ctx context.Context, userID string) ([]Workout, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]Workout, error)
	Delete(ctx context.Context, userID, id string) error
}

type trainingGetter interface {
	Get(ctx context.Context, userID, id string) (*trainings.Training, error)
}

// challengesChecker re-evaluates the user's workout challenges after a
// new session was recorded.
type challengesChecker interface {
	CheckWorkouts(ctx context.Context, userID string) bool
}

type Handler struct {
	repo       workoutsRepo
	trainings  trainingGetter
	challenges challengesChecker
	now        func() time.Time
}

func NewHandler(repo workoutsRepo, trainings trainingGetter, challenges challengesChecker) *Handler {
	return &Handler{
		repo:       repo,
		trainings:  trainings,
		challenges: challenges,
		now:        time.Now,
	}
}

type saveWorkoutRequest struct {
	TrainingID string `json:"training_id"`
	Duration   int    `json:"duration"`
	Date       string `json:"date"`
	Coach      string `json:"coach"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if req.TrainingID == "" || req.Duration <= 0 {
		http.Error(w, "error, missing workout data", http.StatusBadRequest)
		return
	}

	date := handler.now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "error, invalid date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	training, err := handler.trainings.Get(ctx, userID, req.TrainingID)
	if errors.Is(err, trainings.ErrTrainingNotFound) {
		http.Error(w, "error, training not found", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("resolve training %s: %s", req.TrainingID, err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	added, err := handler.repo.Add(ctx, Workout{
		Owner:         userID,
		TrainingID:    req.TrainingID,
		Duration:      req.Duration,
		Date:          date,
		Coach:         req.Coach,
		TotalCalories: TotalCalories(training.CaloriesPerHourMean, req.Duration),
	})
	if err != nil {
		log.Errorf("failed to add workout: %s", err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	handler.challenges.CheckWorkouts(ctx, userID)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var (
		workouts []Workout
		err      error
	)
	if sinceParam := r.URL.Query().Get("since"); sinceParam != "" {
		since, parseErr := time.Parse("2006-01-02", sinceParam)
		if parseErr != nil {
			http.Error(w, "error, invalid since date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		workouts, err = handler.repo.ListSince(ctx, userID, since)
	} else {
		workouts, err = handler.repo.ListByOwner(ctx, userID)
	}
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutsJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workoutID := mux.Vars(r)["id"]
	if workoutID == "" {
		http.Error(w, "error, workout id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, workoutID); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %s: %s", workoutID, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"workout deleted successfully"}`)
}
