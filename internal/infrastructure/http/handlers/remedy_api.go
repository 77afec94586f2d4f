package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/ports/inbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

// RemedyHandlers handles shared remedy requests
type RemedyHandlers struct {
	remedyService inbound.RemedyService
	logger        *zap.Logger
}

// NewRemedyHandlers creates a new remedy handlers instance
func NewRemedyHandlers(remedyService inbound.RemedyService, logger *zap.Logger) *RemedyHandlers {
	return &RemedyHandlers{remedyService: remedyService, logger: logger}
}

// ListRemedies handles GET /api/v1/remedies
func (h *RemedyHandlers) ListRemedies(w http.ResponseWriter, r *http.Request) {
	list, err := h.remedyService.ListRemedies(r.Context(), paginationFrom(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}

type submitRemedyRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
	PrepTime       string   `json:"prep_time"`
	CookTime       string   `json:"cook_time"`
	Servings       string   `json:"servings"`
	Region         string   `json:"region"`
	Tradition      string   `json:"tradition"`
	HealthBenefits []string `json:"health_benefits"`
	Precautions    []string `json:"precautions"`
}

// CreateRemedy handles POST /api/v1/remedies
func (h *RemedyHandlers) CreateRemedy(w http.ResponseWriter, r *http.Request) {
	var req submitRemedyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	dto, err := h.remedyService.SubmitRemedy(r.Context(), inbound.SubmitRemedyCommand{
		AuthorID:       userIDFrom(r),
		Title:          req.Title,
		Description:    req.Description,
		Ingredients:    req.Ingredients,
		Instructions:   req.Instructions,
		PrepTime:       req.PrepTime,
		CookTime:       req.CookTime,
		Servings:       req.Servings,
		Region:         req.Region,
		Tradition:      req.Tradition,
		HealthBenefits: req.HealthBenefits,
		Precautions:    req.Precautions,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    dto,
		Message: "Remedy shared successfully",
	})
}

type generateRemedyRequest struct {
	Illness       string   `json:"illness"`
	Age           string   `json:"age"`
	DietaryInfo   []string `json:"dietary_info"`
	Preferences   []string `json:"preferences"`
	Allergies     []string `json:"allergies"`
	TimeAvailable string   `json:"time_available"`
	Cuisines      []string `json:"cuisines"`
	Ingredients   []string `json:"ingredients"`
}

// GenerateRemedy handles POST /api/v1/remedies/generate
func (h *RemedyHandlers) GenerateRemedy(w http.ResponseWriter, r *http.Request) {
	var req generateRemedyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	dto, err := h.remedyService.GenerateRemedy(r.Context(), inbound.GenerateRemedyCommand{
		UserID:        userIDFrom(r),
		Illness:       req.Illness,
		Age:           req.Age,
		DietaryInfo:   req.DietaryInfo,
		Preferences:   req.Preferences,
		Allergies:     req.Allergies,
		TimeAvailable: req.TimeAvailable,
		Cuisines:      req.Cuisines,
		Ingredients:   req.Ingredients,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    dto,
		Message: "Remedy generated successfully",
	})
}
