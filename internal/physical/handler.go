package physical

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

type physicalRepo interface {
	Upsert(ctx context.Context, userID string, entry Entry) error
	List(ctx context.Context, userID string) ([]Entry, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]Entry, error)
}

// challengesChecker re-evaluates the user's physical challenges after
// a measurement was saved.
type challengesChecker interface {
	CheckPhysical(ctx context.Context, userID string, date time.Time) bool
}

type Handler struct {
	repo       physicalRepo
	challenges challengesChecker
	now        func() time.Time
}

func NewHandler(repo physicalRepo, challenges challengesChecker) *Handler {
	return &Handler{
		repo:       repo,
		challenges: challenges,
		now:        time.Now,
	}
}

type saveEntryRequest struct {
	Date       string  `json:"date"`
	Weight     float64 `json:"weight"`
	BodyFat    float64 `json:"body_fat"`
	BodyMuscle float64 `json:"body_muscle"`
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.physical.save")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new physical data entry, unmarshal json params: %s", err)
		http.Error(w, "save physical data failed", http.StatusBadRequest)
		return
	}

	if req.Weight <= 0 || req.BodyFat < 0 || req.BodyMuscle < 0 {
		http.Error(w, "error, invalid measurement values", http.StatusBadRequest)
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

	entry := Entry{
		Date:       date,
		Weight:     req.Weight,
		BodyFat:    req.BodyFat,
		BodyMuscle: req.BodyMuscle,
	}
	if err := handler.repo.Upsert(ctx, userID, entry); err != nil {
		log.Errorf("failed to save physical data for user %s: %s", userID, err)
		http.Error(w, "error, failed to save physical data", http.StatusInternalServerError)
		return
	}

	handler.challenges.CheckPhysical(ctx, userID, date)

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal physical data entry: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.physical.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var (
		entries []Entry
		err     error
	)
	if sinceParam := r.URL.Query().Get("since"); sinceParam != "" {
		since, parseErr := time.Parse("2006-01-02", sinceParam)
		if parseErr != nil {
			http.Error(w, "error, invalid since date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		entries, err = handler.repo.ListSince(ctx, userID, since)
	} else {
		entries, err = handler.repo.List(ctx, userID)
	}
	if err != nil {
		log.Errorf("list physical data error: %s", err)
		http.Error(w, "failed to get physical data", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("marshal physical data error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}
