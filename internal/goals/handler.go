package goals

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
	"github.com/trainmate/trainmate-api/pkg"
)

type goalsRepo interface {
	Add(ctx context.Context, userID string, goal Goal) (*Goal, error)
	Get(ctx context.Context, userID, id string) (*Goal, error)
	List(ctx context.Context, userID string) ([]Goal, error)
	Complete(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
}

type Handler struct {
	repo goalsRepo
	now  func() time.Time
}

func NewHandler(repo goalsRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

type saveGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func parseGoalDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(defaultGoalHour * time.Hour), nil
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.StartDate == "" || req.EndDate == "" {
		http.Error(w, "error, missing goal data", http.StatusBadRequest)
		return
	}

	startDate, err := parseGoalDate(req.StartDate)
	if err != nil {
		http.Error(w, "error, invalid start date", http.StatusBadRequest)
		return
	}
	endDate, err := parseGoalDate(req.EndDate)
	if err != nil {
		http.Error(w, "error, invalid end date", http.StatusBadRequest)
		return
	}

	goal := Goal{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := goal.ValidateDates(handler.now()); err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, userID, goal)
	if err != nil {
		log.Errorf("failed to add goal [%s]: %s", req.Title, err)
		http.Error(w, "error, failed to add goal", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal goal: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	goals, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list goals error: %s", err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}
	if goals == nil {
		goals = []Goal{}
	}

	goalsJson, err := json.Marshal(goals)
	if err != nil {
		log.Errorf("marshal goals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalsJson, http.StatusOK)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.complete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	goalID := mux.Vars(r)["id"]
	if goalID == "" {
		http.Error(w, "error, goal id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Complete(ctx, userID, goalID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to complete goal %s: %s", goalID, err)
		http.Error(w, "error, failed to complete goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"goal completed successfully"}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	goalID := mux.Vars(r)["id"]
	if goalID == "" {
		http.Error(w, "error, goal id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, goalID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete goal %s: %s", goalID, err)
		http.Error(w, "goal not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"goal deleted successfully"}`)
}
