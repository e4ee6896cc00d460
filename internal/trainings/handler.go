package trainings

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/exercises"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/pkg"
)

type trainingsRepo interface {
	Add(ctx context.Context, training Training) (*Training, error)
	Get(ctx context.Context, userID, id string) (*Training, error)
	ListByOwner(ctx context.Context, userID string) ([]Training, error)
	Delete(ctx context.Context, userID, id string) error
}

type popularityRanker interface {
	PopularExercises(ctx context.Context) []PopularExercise
}

type Handler struct {
	repo      trainingsRepo
	exercises exerciseGetter
	ranker    popularityRanker
}

func NewHandler(repo trainingsRepo, exercises exerciseGetter, ranker popularityRanker) *Handler {
	return &Handler{
		repo:      repo,
		exercises: exercises,
		ranker:    ranker,
	}
}

type saveTrainingRequest struct {
	Name      string   `json:"name"`
	Exercises []string `json:"exercises"`
}

// trainingResponse carries a training with its exercise refs resolved
// to full objects. Dangling refs are left out.
type trainingResponse struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Exercises           []exercises.Exercise `json:"exercises"`
	CaloriesPerHourMean int                  `json:"calories_per_hour_mean"`
}

func (handler *Handler) resolveTraining(ctx context.Context, training Training) trainingResponse {
	resolved := trainingResponse{
		ID:                  training.ID,
		Name:                training.Name,
		Exercises:           []exercises.Exercise{},
		CaloriesPerHourMean: training.CaloriesPerHourMean,
	}
	for _, exerciseID := range training.Exercises {
		exercise, err := handler.exercises.Get(ctx, exerciseID)
		if errors.Is(err, exercises.ErrExerciseNotFound) {
			log.Warnf("training %s references unknown exercise %s", training.ID, exerciseID)
			continue
		}
		if err != nil {
			log.Errorf("resolve exercise %s for training %s: %s", exerciseID, training.ID, err)
			continue
		}
		resolved.Exercises = append(resolved.Exercises, *exercise)
	}
	return resolved
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new training, unmarshal json params: %s", err)
		http.Error(w, "add training failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" || len(req.Exercises) == 0 {
		http.Error(w, "error, missing training data", http.StatusBadRequest)
		return
	}

	var sum float64
	for _, exerciseID := range req.Exercises {
		exercise, err := handler.exercises.Get(ctx, exerciseID)
		if errors.Is(err, exercises.ErrExerciseNotFound) {
			http.Error(w, "error, exercise not found: "+exerciseID, http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Errorf("resolve exercise %s: %s", exerciseID, err)
			http.Error(w, "error, failed to add training", http.StatusInternalServerError)
			return
		}
		sum += exercise.CaloriesPerHour
	}
	mean := int(math.Round(sum / float64(len(req.Exercises))))

	added, err := handler.repo.Add(ctx, Training{
		Owner:               userID,
		Name:                req.Name,
		Exercises:           req.Exercises,
		CaloriesPerHourMean: mean,
	})
	if err != nil {
		log.Errorf("failed to add training [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add training", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal training: %s", err)
		http.Error(w, "error, failed to add training", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	trainings, err := handler.repo.ListByOwner(ctx, userID)
	if err != nil {
		log.Errorf("list trainings error: %s", err)
		http.Error(w, "failed to get trainings", http.StatusInternalServerError)
		return
	}

	resolved := make([]trainingResponse, 0, len(trainings))
	for _, training := range trainings {
		resolved = append(resolved, handler.resolveTraining(ctx, training))
	}

	trainingsJson, err := json.Marshal(resolved)
	if err != nil {
		log.Errorf("marshal trainings error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, trainingsJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	trainingID := mux.Vars(r)["id"]
	if trainingID == "" {
		http.Error(w, "error, training id empty", http.StatusBadRequest)
		return
	}

	training, err := handler.repo.Get(ctx, userID, trainingID)
	if errors.Is(err, ErrTrainingNotFound) {
		http.Error(w, "training not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get training %s error: %s", trainingID, err)
		http.Error(w, "failed to get training", http.StatusInternalServerError)
		return
	}

	trainingJson, err := json.Marshal(handler.resolveTraining(ctx, *training))
	if err != nil {
		log.Errorf("marshal training error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, trainingJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	trainingID := mux.Vars(r)["id"]
	if trainingID == "" {
		http.Error(w, "error, training id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, trainingID); err != nil {
		if errors.Is(err, ErrTrainingNotFound) {
			http.Error(w, "training not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete training %s: %s", trainingID, err)
		http.Error(w, "training not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"training deleted successfully"}`)
}

// HandlePopular serves the public ranking of the most referenced
// exercises. No auth required, rate limited instead.
func (handler *Handler) HandlePopular(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.popular")
	defer span.End()

	popular := handler.ranker.PopularExercises(ctx)

	popularJson, err := json.Marshal(popular)
	if err != nil {
		log.Errorf("marshal popular exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, popularJson, http.StatusOK)
}
