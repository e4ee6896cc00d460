package challenges

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/pkg"
)

type challengesLister interface {
	List(ctx context.Context, userID string, domain Domain) ([]Challenge, error)
}

type challengesChecker interface {
	CreateChallenges(ctx context.Context, userID string) error
	CheckPhysical(ctx context.Context, userID string, date time.Time) bool
	CheckWorkouts(ctx context.Context, userID string) bool
}

type Handler struct {
	repo      challengesLister
	evaluator challengesChecker
	now       func() time.Time
}

func NewHandler(repo challengesLister, evaluator challengesChecker) *Handler {
	return &Handler{
		repo:      repo,
		evaluator: evaluator,
		now:       time.Now,
	}
}

// HandleList returns the user's challenges of one domain, evaluating
// them first so the returned states are fresh.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	domain := Domain(mux.Vars(r)["domain"])
	if !domain.Valid() {
		http.Error(w, "error, unknown challenge type", http.StatusBadRequest)
		return
	}

	switch domain {
	case DomainPhysical:
		handler.evaluator.CheckPhysical(ctx, userID, handler.now().UTC())
	case DomainWorkouts:
		handler.evaluator.CheckWorkouts(ctx, userID)
	}

	challenges, err := handler.repo.List(ctx, userID, domain)
	if err != nil {
		log.Errorf("list %s challenges error: %s", domain, err)
		http.Error(w, "failed to get challenges", http.StatusInternalServerError)
		return
	}
	if challenges == nil {
		challenges = []Challenge{}
	}

	challengesJson, err := json.Marshal(challenges)
	if err != nil {
		log.Errorf("marshal challenges error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, challengesJson, http.StatusOK)
}

// HandleCreate seeds the challenge subcollections for the user. Doing
// it twice is harmless, populated domains are skipped.
func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := handler.evaluator.CreateChallenges(ctx, userID); err != nil {
		log.Errorf("create challenges for user %s: %s", userID, err)
		http.Error(w, "error, failed to create challenges", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(`{"message":"challenges created successfully"}`), http.StatusCreated)
}
