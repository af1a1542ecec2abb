package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/handler/http/response"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/validator"
)

type PositionHandler interface {
	// Position handlers
	GetPosition(w http.ResponseWriter, r *http.Request)

	// Job handlers
	ListJobs(w http.ResponseWriter, r *http.Request)
	CreateJob(w http.ResponseWriter, r *http.Request)
	UpdateJob(w http.ResponseWriter, r *http.Request)

	// Placement handlers
	ListPlacements(w http.ResponseWriter, r *http.Request)
	CreatePlacement(w http.ResponseWriter, r *http.Request)
	UpdatePlacement(w http.ResponseWriter, r *http.Request)

	// Expression of interest handlers
	ListExpressionsOfInterest(w http.ResponseWriter, r *http.Request)
	CreateExpressionOfInterest(w http.ResponseWriter, r *http.Request)
	GetExpressionOfInterest(w http.ResponseWriter, r *http.Request)
	UpdateExpressionOfInterest(w http.ResponseWriter, r *http.Request)
	DeleteExpressionOfInterest(w http.ResponseWriter, r *http.Request)

	// Application handlers
	SubmitApplication(w http.ResponseWriter, r *http.Request)
	ListUnviewedApplications(w http.ResponseWriter, r *http.Request)
	UpdateApplications(w http.ResponseWriter, r *http.Request)
	FilterDocuments(w http.ResponseWriter, r *http.Request)
}

type positionHandlerImpl struct {
	positionService position.PositionService
}

func NewPositionHandler(positionService position.PositionService) PositionHandler {
	return &positionHandlerImpl{
		positionService: positionService,
	}
}

// ==================== POSITION HANDLERS ====================

func (h *positionHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.positionService.GetPosition(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== JOB HANDLERS ====================

func (h *positionHandlerImpl) ListJobs(w http.ResponseWriter, r *http.Request) {
	results, err := h.positionService.ListJobs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *positionHandlerImpl) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req position.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.CreateJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job created successfully", result)
}

// UpdateJob serves both PUT /jobs and PUT /jobs/{id}; a path id wins over the body.
func (h *positionHandlerImpl) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req position.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if chi.URLParam(r, "id") != "" {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		req.ID = id
	}

	if err := requireUpdateID(req.ID, req.Validate()); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.UpdateJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job updated successfully", result)
}

// ==================== PLACEMENT HANDLERS ====================

func (h *positionHandlerImpl) ListPlacements(w http.ResponseWriter, r *http.Request) {
	results, err := h.positionService.ListPlacements(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *positionHandlerImpl) CreatePlacement(w http.ResponseWriter, r *http.Request) {
	var req position.PlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.CreatePlacement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Placement created successfully", result)
}

func (h *positionHandlerImpl) UpdatePlacement(w http.ResponseWriter, r *http.Request) {
	var req position.PlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if chi.URLParam(r, "id") != "" {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		req.ID = id
	}

	if err := requireUpdateID(req.ID, req.Validate()); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.UpdatePlacement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Placement updated successfully", result)
}

// ==================== EXPRESSION OF INTEREST HANDLERS ====================

func (h *positionHandlerImpl) ListExpressionsOfInterest(w http.ResponseWriter, r *http.Request) {
	results, err := h.positionService.ListExpressionsOfInterest(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *positionHandlerImpl) CreateExpressionOfInterest(w http.ResponseWriter, r *http.Request) {
	var eoi position.ExpressionOfInterest
	if err := json.NewDecoder(r.Body).Decode(&eoi); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	eoi.ID = 0

	if err := validator.Struct(&eoi); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.CreateExpressionOfInterest(r.Context(), eoi)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expression of interest created successfully", result)
}

func (h *positionHandlerImpl) GetExpressionOfInterest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.positionService.GetExpressionOfInterest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *positionHandlerImpl) UpdateExpressionOfInterest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var eoi position.ExpressionOfInterest
	if err := json.NewDecoder(r.Body).Decode(&eoi); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	eoi.ID = id

	if err := validator.Struct(&eoi); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.UpdateExpressionOfInterest(r.Context(), eoi)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expression of interest updated successfully", result)
}

// DeleteExpressionOfInterest answers 204 when the record existed and 400 when
// it did not.
func (h *positionHandlerImpl) DeleteExpressionOfInterest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	status, err := h.positionService.DeleteExpressionOfInterest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if status.HTTPStatus() == http.StatusNoContent {
		response.NoContent(w)
		return
	}

	response.BadRequest(w, "Expression of interest "+status.String(), map[string]string{
		"id": strconv.FormatInt(id, 10),
	})
}

// ==================== APPLICATION HANDLERS ====================

func (h *positionHandlerImpl) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req position.ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.SubmitApplication(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application submitted successfully", result)
}

func (h *positionHandlerImpl) ListUnviewedApplications(w http.ResponseWriter, r *http.Request) {
	results, err := h.positionService.ListUnviewedApplications(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *positionHandlerImpl) UpdateApplications(w http.ResponseWriter, r *http.Request) {
	var req position.UpdateApplicationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	applications := make([]position.Application, 0, len(req.Applications))
	for _, u := range req.Applications {
		applications = append(applications, u.ToApplication())
	}

	results, err := h.positionService.UpdateApplications(r.Context(), applications)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Applications updated successfully", results)
}

// FilterDocuments previews which of the current user's documents an
// application listing file_ids would attach. file_ids is comma separated and
// may be repeated.
func (h *positionHandlerImpl) FilterDocuments(w http.ResponseWriter, r *http.Request) {
	var req position.ApplicationRequest
	for _, raw := range r.URL.Query()["file_ids"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				response.BadRequest(w, "Invalid file id", map[string]string{"file_ids": part})
				return
			}
			req.FileIDs = append(req.FileIDs, id)
		}
	}

	results, err := h.positionService.FilterUserDocuments(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ==================== HELPER FUNCTIONS ====================

// requireUpdateID adds a missing id to the validation result of an update
// request. Without an id the update would store a new record and skip the
// flag reset creation applies.
func requireUpdateID(id int64, err error) error {
	if id > 0 {
		return err
	}

	missing := validator.ValidationError{Field: "id", Message: "id is required"}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return append(validationErrs, missing)
	}
	if err != nil {
		return err
	}
	return validator.ValidationErrors{missing}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid id", map[string]string{"id": raw})
		return 0, false
	}
	return id, true
}
