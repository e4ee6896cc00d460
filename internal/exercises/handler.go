package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/pkg"
)

//go:generate mockgen -source=handler.go -destination=handler_mocks_test.go -package=exercises

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id string) (*Exercise, error)
	ListVisible(ctx context.Context, owner string) ([]Exercise, error)
	ListPublic(ctx context.Context) ([]Exercise, error)
	ListByCategory(ctx context.Context, owner, categoryID string) ([]Exercise, error)
	Update(ctx context.Context, owner, id string, updates []firestore.Update) error
	Delete(ctx context.Context, owner, id string) error
}

type categoryChecker interface {
	Exists(ctx context.Context, owner, id string) (bool, error)
}

// meanRecalculator refreshes the stored calorie means of the user's
// trainings after an exercise burn rate changed.
type meanRecalculator interface {
	Recalculate(ctx context.Context, owner, exerciseID string) bool
}

type Handler struct {
	repo         exercisesRepo
	categories   categoryChecker
	recalculator meanRecalculator
}

func NewHandler(repo exercisesRepo, categories categoryChecker, recalculator meanRecalculator) *Handler {
	return &Handler{
		repo:         repo,
		categories:   categories,
		recalculator: recalculator,
	}
}

type saveExerciseRequest struct {
	Name            string   `json:"name"`
	CaloriesPerHour *float64 `json:"calories_per_hour"`
	Public          *bool    `json:"public"`
	CategoryID      string   `json:"category_id"`
	TrainingMuscle  string   `json:"training_muscle"`
	ImageURL        string   `json:"image_url"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.CategoryID == "" || req.CaloriesPerHour == nil {
		http.Error(w, "error, missing exercise data", http.StatusBadRequest)
		return
	}
	if !ValidCaloriesPerHour(*req.CaloriesPerHour) {
		http.Error(w,
			fmt.Sprintf("error, calories per hour must be between %d and %d", MinCaloriesPerHour, MaxCaloriesPerHour),
			http.StatusBadRequest,
		)
		return
	}

	categoryExists, err := handler.categories.Exists(ctx, userID, req.CategoryID)
	if err != nil {
		log.Errorf("check category %s: %s", req.CategoryID, err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}
	if !categoryExists {
		http.Error(w, "error, category not found", http.StatusBadRequest)
		return
	}

	public := false
	if req.Public != nil {
		public = *req.Public
	}

	added, err := handler.repo.Add(ctx, Exercise{
		Name:            req.Name,
		CaloriesPerHour: *req.CaloriesPerHour,
		Public:          public,
		Owner:           userID,
		CategoryID:      req.CategoryID,
		TrainingMuscle:  req.TrainingMuscle,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		log.Errorf("failed to add exercise [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal exercise: %s", err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	exercises, err := handler.repo.ListVisible(ctx, userID)
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	handler.writeExercises(w, exercises)
}

// HandleListPublic serves the unauthenticated catalog of public exercises.
func (handler *Handler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.listPublic")
	defer span.End()

	exercises, err := handler.repo.ListPublic(ctx)
	if err != nil {
		log.Errorf("list public exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	handler.writeExercises(w, exercises)
}

func (handler *Handler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.listByCategory")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	categoryID := mux.Vars(r)["categoryId"]
	if categoryID == "" {
		http.Error(w, "error, category id empty", http.StatusBadRequest)
		return
	}

	exercises, err := handler.repo.ListByCategory(ctx, userID, categoryID)
	if err != nil {
		log.Errorf("list exercises for category %s error: %s", categoryID, err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	handler.writeExercises(w, exercises)
}

func (handler *Handler) writeExercises(w http.ResponseWriter, exercises []Exercise) {
	if exercises == nil {
		exercises = []Exercise{}
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	var req saveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}

	var updates []firestore.Update
	if req.Name != "" {
		updates = append(updates, firestore.Update{Path: "name", Value: req.Name})
	}
	if req.TrainingMuscle != "" {
		updates = append(updates, firestore.Update{Path: "training_muscle", Value: req.TrainingMuscle})
	}
	if req.ImageURL != "" {
		updates = append(updates, firestore.Update{Path: "image_url", Value: req.ImageURL})
	}
	if req.Public != nil {
		updates = append(updates, firestore.Update{Path: "public", Value: *req.Public})
	}
	if req.CategoryID != "" {
		categoryExists, err := handler.categories.Exists(ctx, userID, req.CategoryID)
		if err != nil {
			log.Errorf("check category %s: %s", req.CategoryID, err)
			http.Error(w, "error, failed to update exercise", http.StatusInternalServerError)
			return
		}
		if !categoryExists {
			http.Error(w, "error, category not found", http.StatusBadRequest)
			return
		}
		updates = append(updates, firestore.Update{Path: "category_id", Value: req.CategoryID})
	}

	caloriesChanged := false
	if req.CaloriesPerHour != nil {
		if !ValidCaloriesPerHour(*req.CaloriesPerHour) {
			http.Error(w,
				fmt.Sprintf("error, calories per hour must be between %d and %d", MinCaloriesPerHour, MaxCaloriesPerHour),
				http.StatusBadRequest,
			)
			return
		}
		caloriesChanged = true
		updates = append(updates, firestore.Update{Path: "calories_per_hour", Value: *req.CaloriesPerHour})
	}

	if len(updates) == 0 {
		http.Error(w, "no valid fields to update", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, userID, exerciseID, updates); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update exercise %s: %s", exerciseID, err)
		http.Error(w, "error, failed to update exercise", http.StatusInternalServerError)
		return
	}

	if caloriesChanged {
		if !handler.recalculator.Recalculate(ctx, userID, exerciseID) {
			log.Warnf("trainings mean recalculation incomplete after exercise %s update", exerciseID)
		}
	}

	pkg.WriteJSONResponseOK(w, `{"message":"exercise updated successfully"}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, exerciseID); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete exercise %s: %s", exerciseID, err)
		http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"exercise deleted successfully"}`)
}
