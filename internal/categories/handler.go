package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/pkg"
)

type categoriesRepo interface {
	Add(ctx context.Context, category Category) (*Category, error)
	GetForOwner(ctx context.Context, owner, id string) (*Category, error)
	ListByOwner(ctx context.Context, owner string) ([]Category, error)
	Update(ctx context.Context, owner, id string, updates []firestore.Update) error
	Delete(ctx context.Context, owner, id string) error
}

type Handler struct {
	repo categoriesRepo
}

func NewHandler(repo categoriesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

type saveCategoryRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"isCustom"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new category, unmarshal json params: %s", err)
		http.Error(w, "add category failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, category name empty", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, Category{
		Name:     req.Name,
		Icon:     req.Icon,
		IsCustom: req.IsCustom,
		Owner:    userID,
	})
	if err != nil {
		log.Errorf("failed to add category [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add category", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal category: %s", err)
		http.Error(w, "error, failed to add category", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	categories, err := handler.repo.ListByOwner(ctx, userID)
	if err != nil {
		log.Errorf("list categories error: %s", err)
		http.Error(w, "failed to get categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []Category{}
	}

	categoriesJson, err := json.Marshal(categories)
	if err != nil {
		log.Errorf("marshal categories error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, categoriesJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	categoryID := mux.Vars(r)["id"]
	if categoryID == "" {
		http.Error(w, "error, category id empty", http.StatusBadRequest)
		return
	}

	var req saveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "update category failed", http.StatusBadRequest)
		return
	}

	var updates []firestore.Update
	if req.Name != "" {
		updates = append(updates, firestore.Update{Path: "name", Value: req.Name})
	}
	if req.Icon != "" {
		updates = append(updates, firestore.Update{Path: "icon", Value: req.Icon})
	}
	if len(updates) == 0 {
		http.Error(w, "no valid fields to update", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, userID, categoryID, updates); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update category %s: %s", categoryID, err)
		http.Error(w, "error, failed to update category", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"category updated successfully"}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.categories.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	categoryID := mux.Vars(r)["id"]
	if categoryID == "" {
		http.Error(w, "error, category id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, categoryID); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete category %s: %s", categoryID, err)
		http.Error(w, "category not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"category deleted successfully"}`)
}
