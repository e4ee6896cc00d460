package water

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/pkg"
)

type waterRepo interface {
	AddQuantity(ctx context.Context, userID string, date time.Time, quantity int) (*Intake, error)
	GetForDay(ctx context.Context, userID string, date time.Time) (*Intake, error)
	List(ctx context.Context, userID string) ([]Intake, error)
}

type Handler struct {
	repo waterRepo
	now  func() time.Time
}

func NewHandler(repo waterRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

type addIntakeRequest struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.water.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req addIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new water intake, unmarshal json params: %s", err)
		http.Error(w, "add water intake failed", http.StatusBadRequest)
		return
	}

	if req.Quantity <= 0 {
		http.Error(w, "error, quantity must be positive", http.StatusBadRequest)
		return
	}

	date := handler.now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "error, invalid date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	intake, err := handler.repo.AddQuantity(ctx, userID, date, req.Quantity)
	if err != nil {
		log.Errorf("failed to add water intake for user %s: %s", userID, err)
		http.Error(w, "error, failed to add water intake", http.StatusInternalServerError)
		return
	}

	intakeJson, err := json.Marshal(intake)
	if err != nil {
		log.Errorf("failed to marshal water intake: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, intakeJson, http.StatusOK)
}

func (handler *Handler) HandleGetDaily(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.water.getDaily")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	date := handler.now().UTC().Truncate(24 * time.Hour)
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			http.Error(w, "error, invalid date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	intake, err := handler.repo.GetForDay(ctx, userID, date)
	if err != nil {
		log.Errorf("failed to get water intake for user %s: %s", userID, err)
		http.Error(w, "failed to get water intake", http.StatusInternalServerError)
		return
	}

	intakeJson, err := json.Marshal(intake)
	if err != nil {
		log.Errorf("failed to marshal water intake: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, intakeJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.water.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	intakes, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list water intakes error: %s", err)
		http.Error(w, "failed to get water intakes", http.StatusInternalServerError)
		return
	}
	if intakes == nil {
		intakes = []Intake{}
	}

	intakesJson, err := json.Marshal(intakes)
	if err != nil {
		log.Errorf("marshal water intakes error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, intakesJson, http.StatusOK)
}
