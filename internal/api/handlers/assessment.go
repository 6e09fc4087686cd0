package handlers

import (
	"net/http"

	"github.com/wonny/creditlens/internal/assessment"
	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/logger"
)

// AssessmentHandler serves the credit assessment endpoints
// ⭐ SSOT: HTTP decoding only; all computation goes through assessment.Service
type AssessmentHandler struct {
	service *assessment.Service
	logger  *logger.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(service *assessment.Service, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: service,
		logger:  log,
	}
}

// Assess runs the full pipeline for one year
// POST /api/assessments
func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req assessment.Request
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.Assess(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// YearsRequest asks for an assessment of several years
type YearsRequest struct {
	Dataset contracts.Dataset     `json:"dataset"`
	Years   []int                 `json:"years,omitempty"` // empty: every year in the dataset
	Bureau  *contracts.AECBReport `json:"bureau,omitempty"`
}

// YearsResponse lists assessments sorted by year
type YearsResponse struct {
	Assessments []*assessment.Assessment `json:"assessments"`
	Count       int                      `json:"count"`
}

// AssessYears assesses several years in parallel
// POST /api/assessments/years
func (h *AssessmentHandler) AssessYears(w http.ResponseWriter, r *http.Request) {
	var req YearsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	results, err := h.service.AssessYears(r.Context(), req.Dataset, req.Years, req.Bureau)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, YearsResponse{
		Assessments: results,
		Count:       len(results),
	})
}

// DatasetYear selects one year of a dataset
type DatasetYear struct {
	Dataset contracts.Dataset `json:"dataset"`
	Year    int               `json:"year"`
}

// Validate returns the data-quality report for one year
// POST /api/validation
func (h *AssessmentHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req DatasetYear
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.Validate(r.Context(), req.Dataset, req.Year)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// LoanScheduleRequest projects explicit loan terms against one year
type LoanScheduleRequest struct {
	Dataset contracts.Dataset        `json:"dataset"`
	Year    int                      `json:"year"`
	Loan    contracts.LoanParameters `json:"loan"`
}

// LoanSchedule returns the amortization schedule with health projection
// POST /api/loan/schedule
func (h *AssessmentHandler) LoanSchedule(w http.ResponseWriter, r *http.Request) {
	var req LoanScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.ProjectLoan(r.Context(), req.Loan, req.Dataset, req.Year)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CADRequest scores a CAD facility. Ratios, when given, take precedence over the dataset.
type CADRequest struct {
	Facts   contracts.CADLoanFacts `json:"facts"`
	Ratios  *contracts.CADRatios   `json:"ratios,omitempty"`
	Dataset contracts.Dataset      `json:"dataset,omitempty"`
	Year    int                    `json:"year,omitempty"`
}

// AssessCAD scores a Cash-Against-Documents facility
// POST /api/cad/assessments
func (h *AssessmentHandler) AssessCAD(w http.ResponseWriter, r *http.Request) {
	var req CADRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		result *contracts.CADResult
		err    error
	)
	if req.Ratios != nil {
		result, err = h.service.AssessCADWithRatios(req.Facts, *req.Ratios)
	} else {
		result, err = h.service.AssessCAD(r.Context(), req.Facts, req.Dataset, req.Year)
	}
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
