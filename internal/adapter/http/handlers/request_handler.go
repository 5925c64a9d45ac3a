package handlers

import (
	"context"
	"net/http"
	"strings"

	request "medrequest_xpto/internal/adapter/http/dto/request"
	response "medrequest_xpto/internal/adapter/http/dto/response"
	"medrequest_xpto/internal/adapter/http/middleware"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

// RequestHandler exposes the medical request lifecycle.
type RequestHandler struct {
	usecase usecase.IRequestUseCase
}

func NewRequestHandler(uc usecase.IRequestUseCase) *RequestHandler {
	return &RequestHandler{usecase: uc}
}

// Submit creates a request for the authenticated patient.
//
// @Summary  Submit a medical request
// @Tags     requests
// @Accept   json
// @Produce  json
// @Param    body body request.SubmitRequest true "Request payload"
// @Success  201 {object} response.SubmitResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  403 {object} pkg.HTTPError
// @Security Bearer
// @Router   /requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	var payload request.SubmitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	actor := middleware.ActorFrom(c)
	res, err := h.usecase.Submit(c.Request.Context(), actor, payload.ToInput(actor))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromSubmitResult(res))
}

// Get returns one request. Patients only see their own.
//
// @Summary  Get a medical request
// @Tags     requests
// @Produce  json
// @Param    id path string true "Request ID"
// @Success  200 {object} response.MedicalRequestResponse
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	r, err := h.usecase.GetByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromMedicalRequest(r))
}

// List returns the requests of ?patient_id, defaulting to the caller.
//
// @Summary  List medical requests of a patient
// @Tags     requests
// @Produce  json
// @Param    patient_id query string false "Patient ID"
// @Success  200 {array} response.MedicalRequestResponse
// @Security Bearer
// @Router   /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	patientID := strings.TrimSpace(c.Query("patient_id"))
	if patientID == "" {
		patientID = actor.ID
	}

	list, err := h.usecase.ListByPatient(c.Request.Context(), actor, patientID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromMedicalRequests(list))
}

// Reanalyze re-runs the AI gate with new images or text.
//
// @Summary  Resubmit images for analysis
// @Tags     requests
// @Accept   json
// @Produce  json
// @Param    id   path string                   true "Request ID"
// @Param    body body request.ReanalyzeRequest true "New images"
// @Success  200 {object} response.SubmitResponse
// @Security Bearer
// @Router   /requests/{id}/reanalyze [post]
func (h *RequestHandler) Reanalyze(c *gin.Context) {
	var payload request.ReanalyzeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	res, err := h.usecase.Reanalyze(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSubmitResult(res))
}

// Approve prices the request and moves it to approved_pending_payment.
//
// @Summary  Approve a request (doctor)
// @Tags     requests
// @Accept   json
// @Produce  json
// @Param    id   path string                 true  "Request ID"
// @Param    body body request.ApproveRequest false "Doctor overrides"
// @Success  200 {object} response.MedicalRequestResponse
// @Failure  409 {object} pkg.HTTPError
// @Failure  422 {object} pkg.HTTPError
// @Security Bearer
// @Router   /requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	var payload request.ApproveRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}

	r, err := h.usecase.Approve(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.ToInput())
	h.respond(c, r, err)
}

// @Summary  Reject a request (doctor)
// @Tags     requests
// @Accept   json
// @Produce  json
// @Param    id   path string                true "Request ID"
// @Param    body body request.ReasonRequest true "Rejection reason"
// @Success  200 {object} response.MedicalRequestResponse
// @Security Bearer
// @Router   /requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *gin.Context) {
	h.withReason(c, h.usecase.Reject)
}

// @Summary  Cancel a request
// @Tags     requests
// @Accept   json
// @Produce  json
// @Param    id   path string                true "Request ID"
// @Param    body body request.ReasonRequest true "Cancellation reason"
// @Success  200 {object} response.MedicalRequestResponse
// @Security Bearer
// @Router   /requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(c *gin.Context) {
	h.withReason(c, h.usecase.Cancel)
}

// Sign accepts either an externally signed document or a certificate reference.
//
// @Summary  Sign a paid request (doctor)
// @Tags     requests
// @Accept   json
// @Produce  json
// @Param    id   path string              true "Request ID"
// @Param    body body request.SignRequest true "Signing input"
// @Success  200 {object} response.MedicalRequestResponse
// @Failure  502 {object} pkg.HTTPError
// @Security Bearer
// @Router   /requests/{id}/sign [post]
func (h *RequestHandler) Sign(c *gin.Context) {
	var payload request.SignRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	r, err := h.usecase.Sign(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.ToInput())
	h.respond(c, r, err)
}

// Deliver hands a signed document to the patient. Only an admin or the doctor
// who owns the request may trigger it; automatic delivery covers the rest.
//
// @Summary  Deliver a signed document (admin or owning doctor)
// @Tags     requests
// @Produce  json
// @Param    id path string true "Request ID"
// @Success  200 {object} response.MedicalRequestResponse
// @Failure  403 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /requests/{id}/deliver [post]
func (h *RequestHandler) Deliver(c *gin.Context) {
	r, err := h.usecase.DeliverAs(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	h.respond(c, r, err)
}

// @Summary  Accept a consultation (doctor)
// @Tags     consultations
// @Produce  json
// @Param    id path string true "Request ID"
// @Success  200 {object} response.MedicalRequestResponse
// @Security Bearer
// @Router   /requests/{id}/consultation/accept [post]
func (h *RequestHandler) AcceptConsultation(c *gin.Context) {
	r, err := h.usecase.AcceptConsultation(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	h.respond(c, r, err)
}

// @Summary  Start a paid consultation (doctor)
// @Tags     consultations
// @Produce  json
// @Param    id path string true "Request ID"
// @Success  200 {object} response.MedicalRequestResponse
// @Security Bearer
// @Router   /requests/{id}/consultation/start [post]
func (h *RequestHandler) StartConsultation(c *gin.Context) {
	r, err := h.usecase.StartConsultation(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	h.respond(c, r, err)
}

// @Summary  Finish a consultation (doctor)
// @Tags     consultations
// @Accept   json
// @Produce  json
// @Param    id   path string                            true  "Request ID"
// @Param    body body request.FinishConsultationRequest false "Consultation notes"
// @Success  200 {object} response.MedicalRequestResponse
// @Security Bearer
// @Router   /requests/{id}/consultation/finish [post]
func (h *RequestHandler) FinishConsultation(c *gin.Context) {
	var payload request.FinishConsultationRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}

	r, err := h.usecase.FinishConsultation(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.Notes)
	h.respond(c, r, err)
}

func (h *RequestHandler) withReason(c *gin.Context, action func(ctx context.Context, actor entities.Actor, id, reason string) (entities.MedicalRequest, error)) {
	var payload request.ReasonRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}

	r, err := action(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.Reason)
	h.respond(c, r, err)
}

func (h *RequestHandler) respond(c *gin.Context, r entities.MedicalRequest, err error) {
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromMedicalRequest(r))
}

// bindOptionalJSON accepts an empty body and rejects a malformed one.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return false
	}
	return true
}
