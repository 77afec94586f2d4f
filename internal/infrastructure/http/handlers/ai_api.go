package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/application/ai"
	"github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/ports/inbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

// AIHandlers handles generative model requests
type AIHandlers struct {
	aiService      inbound.AIService
	recipeService  inbound.RecipeService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewAIHandlers creates a new AI handlers instance
func NewAIHandlers(aiService inbound.AIService, recipeService inbound.RecipeService, maxUploadBytes int64, logger *zap.Logger) *AIHandlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &AIHandlers{
		aiService:      aiService,
		recipeService:  recipeService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type generateRecipeRequest struct {
	Ingredients   []string `json:"ingredients"`
	Cuisine       string   `json:"cuisine"`
	Restrictions  []string `json:"restrictions"`
	Proficiency   string   `json:"proficiency"`
	TimeAvailable string   `json:"timeAvailable"`
}

// GenerateRecipe handles POST /api/v1/ai/generate-recipe and the legacy
// POST /api/generate-recipe route.
func (h *AIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req generateRecipeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if len(req.Ingredients) == 0 {
		writeError(w, r, h.logger, apperrors.NewValidationError("at least one ingredient is required"))
		return
	}

	generated, err := h.aiService.GenerateRecipe(r.Context(), inbound.GenerateRecipeCommand{
		Ingredients:   req.Ingredients,
		Cuisine:       req.Cuisine,
		Restrictions:  req.Restrictions,
		Proficiency:   req.Proficiency,
		TimeAvailable: req.TimeAvailable,
	})
	if err != nil {
		writeError(w, r, h.logger, ai.ToAppError(err))
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"recipe": generated},
	})
}

type analyzeIngredientsRequest struct {
	Ingredients []string `json:"ingredients"`
}

// AnalyzeIngredients handles POST /api/v1/ai/analyze-ingredients and the
// legacy POST /api/analyze-ingredients route. The suggestion text is
// returned verbatim.
func (h *AIHandlers) AnalyzeIngredients(w http.ResponseWriter, r *http.Request) {
	var req analyzeIngredientsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if len(req.Ingredients) == 0 {
		writeError(w, r, h.logger, apperrors.NewValidationError("at least one ingredient is required"))
		return
	}

	suggestions, err := h.aiService.SuggestDishes(r.Context(), req.Ingredients)
	if err != nil {
		writeError(w, r, h.logger, ai.ToAppError(err))
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"suggestions": suggestions},
	})
}

// AnalyzeImage handles POST /api/v1/ai/analyze-image and the legacy
// POST /api/analyze-image route. The image arrives as multipart form
// data under the "image" field.
func (h *AIHandlers) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("image upload too large or malformed"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("an image file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("failed to read image"))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	ingredients, err := h.aiService.AnalyzeImage(r.Context(), data, mimeType)
	if err != nil {
		writeError(w, r, h.logger, ai.ToAppError(err))
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"ingredients": ingredients},
	})
}

// SaveGenerated handles POST /api/v1/ai/save-recipe
func (h *AIHandlers) SaveGenerated(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipe *recipe.Generated `json:"recipe"`
	}
	if err := decodeBody(w, r, &req); err != nil || req.Recipe == nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("a recipe to save is required"))
		return
	}

	id, err := h.recipeService.SaveGenerated(r.Context(), userIDFrom(r), req.Recipe)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"id": id},
		Message: "Recipe saved successfully",
	})
}
