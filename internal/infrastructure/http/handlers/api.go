// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/domain/content"
	"github.com/tastevine/v1/internal/infrastructure/http/middleware"
	"github.com/tastevine/v1/internal/ports/inbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool                    `json:"success"`
	Data    interface{}             `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Details *apperrors.ErrorDetails `json:"error_details,omitempty"`
	Message string                  `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps an application error onto the response. AppErrors
// carry their own HTTP status; anything else is an internal error.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.NewInternalError("Internal server error").WithCause(err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("code", string(apperrors.GetCode(appErr))),
			zap.Error(err))
	}

	details := apperrors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())).Error
	writeJSON(w, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   appErr.Message,
		Details: &details,
	})
}

// Legacy adapts a handler for the flat pre-v1 paths. Those clients treat
// any non-200 status as a transport failure and read the success flag
// instead, so business rejections keep a 200 status. Server-side
// failures still surface as 5xx.
func Legacy(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(&legacyWriter{ResponseWriter: w}, r)
	}
}

type legacyWriter struct {
	http.ResponseWriter
}

func (w *legacyWriter) WriteHeader(code int) {
	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(code)
}

// userIDFrom returns the authenticated caller's ID, or uuid.Nil for
// anonymous requests.
func userIDFrom(r *http.Request) uuid.UUID {
	raw, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst)
}

// RecipeHandlers handles community recipe requests
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{recipeService: recipeService, logger: logger}
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	params := paginationFrom(r)

	list, err := h.recipeService.ListRecipes(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid recipe id"))
		return
	}

	dto, err := h.recipeService.GetRecipeByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

type submitRecipeRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ImageURL     string   `json:"image_url"`
	DietaryTags  []string `json:"dietary_tags"`
	Difficulty   string   `json:"difficulty"`
	PrepTime     string   `json:"prep_time"`
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req submitRecipeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	dto, err := h.recipeService.SubmitRecipe(r.Context(), inbound.SubmitRecipeCommand{
		AuthorID:     userIDFrom(r),
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		DietaryTags:  req.DietaryTags,
		Difficulty:   req.Difficulty,
		PrepTime:     req.PrepTime,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    dto,
		Message: "Recipe submitted successfully",
	})
}

// ListSaved handles GET /api/v1/recipes/saved
func (h *RecipeHandlers) ListSaved(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.recipeService.ListSaved(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dtos})
}

func paginationFrom(r *http.Request) inbound.PaginationParams {
	params := inbound.PaginationParams{}
	if page := r.URL.Query().Get("page"); page != "" {
		if n, err := strconv.Atoi(page); err == nil {
			params.Page = n
		}
	}
	if size := r.URL.Query().Get("page_size"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			params.PageSize = n
		}
	}
	return params
}

// VoteHandlers handles vote ledger requests
type VoteHandlers struct {
	voteService inbound.VoteService
	logger      *zap.Logger
}

// NewVoteHandlers creates a new vote handlers instance
func NewVoteHandlers(voteService inbound.VoteService, logger *zap.Logger) *VoteHandlers {
	return &VoteHandlers{voteService: voteService, logger: logger}
}

type castVoteRequest struct {
	VoteType string `json:"vote_type"`
}

// CastVote handles POST /api/v1/{recipes|remedies}/{id}/vote
func (h *VoteHandlers) CastVote(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid content id"))
			return
		}

		var req castVoteRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
			return
		}

		result, err := h.voteService.CastVote(r.Context(), kind, id, userIDFrom(r), content.VoteType(req.VoteType))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}

		writeJSON(w, http.StatusOK, APIResponse{
			Success: true,
			Data:    result,
			Message: "Vote recorded",
		})
	}
}

// CheckVote handles GET /api/v1/{recipes|remedies}/{id}/vote
func (h *VoteHandlers) CheckVote(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid content id"))
			return
		}

		vote, err := h.voteService.CheckUserVote(r.Context(), kind, id, userIDFrom(r))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}

		data := map[string]interface{}{"vote_type": nil}
		if vote != nil {
			data["vote_type"] = string(*vote)
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
	}
}
