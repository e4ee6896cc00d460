package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/pkg"
)

type usersRepo interface {
	Save(ctx context.Context, userID string, user User) error
	Get(ctx context.Context, userID string) (*User, error)
}

// challengesBootstrapper seeds the user's challenge subcollections the
// first time their profile is saved.
type challengesBootstrapper interface {
	CreateChallenges(ctx context.Context, userID string) error
}

type Handler struct {
	repo       usersRepo
	challenges challengesBootstrapper
}

func NewHandler(repo usersRepo, challenges challengesBootstrapper) *Handler {
	return &Handler{
		repo:       repo,
		challenges: challenges,
	}
}

type saveUserRequest struct {
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Gender   string  `json:"gender"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Birthday string  `json:"birthday"`
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.save")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("save user, unmarshal json params: %s", err)
		http.Error(w, "save user failed", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Save(ctx, userID, User{
		Email:    req.Email,
		FullName: req.FullName,
		Gender:   req.Gender,
		Weight:   req.Weight,
		Height:   req.Height,
		Birthday: req.Birthday,
	}); err != nil {
		log.Errorf("failed to save user %s: %s", userID, err)
		http.Error(w, "error, failed to save user", http.StatusInternalServerError)
		return
	}

	if err := handler.challenges.CreateChallenges(ctx, userID); err != nil {
		log.Errorf("failed to seed challenges for user %s: %s", userID, err)
	}

	pkg.WriteJSONResponseOK(w, `{"message":"user saved successfully"}`)
}

func (handler *Handler) HandleGetInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getInfo")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get user %s error: %s", userID, err)
		http.Error(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("marshal user error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusOK)
}
