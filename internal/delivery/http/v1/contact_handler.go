package v1

import (
	"errors"
	"net/http"

	"nymble-website/internal/delivery/http/middleware"
	"nymble-website/internal/delivery/http/response"
	"nymble-website/internal/domain"
	"nymble-website/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact form routes. Every /contact/form
// route runs behind the form session middleware; submit also passes the
// contact rate limiter.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, sessions, submitLimiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	contact := public.Group("/contact")
	{
		contact.GET("/options", handler.Options)
	}

	form := contact.Group("/form", sessions)
	{
		form.GET("", handler.GetForm)
		form.PATCH("/fields", handler.UpdateFields)
		form.POST("/submit", submitLimiter, handler.Submit)
		form.POST("/reset", handler.Reset)
	}
}

// FormView is the JSON shape of a contact form session
type FormView struct {
	SessionID string                 `json:"session_id"`
	Fields    domain.ContactForm     `json:"fields"`
	Errors    map[string]FieldError  `json:"errors"`
	State     domain.SubmissionState `json:"state"`
}

type FieldError struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// UpdateFieldsRequest edits one field ({field, value}) or several ({fields})
type UpdateFieldsRequest struct {
	Field  string            `json:"field" example:"email"`
	Value  *string           `json:"value" example:"jane@acme.io"`
	Fields map[string]string `json:"fields"`
}

type OptionsResponse struct {
	Interests []domain.Option `json:"interests"`
	Sources   []domain.Option `json:"sources"`
}

func newFormView(sessionID string, snap domain.FormSnapshot) FormView {
	errs := make(map[string]FieldError, len(snap.Errors))
	for field, e := range snap.Errors {
		errs[string(field)] = FieldError{Kind: e.Kind, Message: e.Message}
	}
	return FormView{
		SessionID: sessionID,
		Fields:    snap.Fields,
		Errors:    errs,
		State:     snap.State,
	}
}

// sessionError maps usecase errors for a bound session
func sessionError(err error) *apperror.AppError {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return apperror.NotFound("Form session expired. Reload the form to start again.")
	}
	return apperror.Internal(err)
}

// Options godoc
// @Summary      Contact form options
// @Description  Lists the selectable values for the interest and source fields
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=OptionsResponse}
// @Router       /contact/options [get]
func (h *ContactHandler) Options(c *gin.Context) {
	response.Success(c, http.StatusOK, "Contact form options", OptionsResponse{
		Interests: domain.InterestOptions,
		Sources:   domain.SourceOptions,
	})
}

// GetForm godoc
// @Summary      Get contact form
// @Description  Returns the current values, field errors and submission state of the visitor's form
// @Tags         contact
// @Produce      json
// @Param        X-Form-Session  header    string  false  "Form session id"
// @Success      200             {object}  response.Response{data=FormView}
// @Failure      404             {object}  response.Response
// @Router       /contact/form [get]
func (h *ContactHandler) GetForm(c *gin.Context) {
	id := middleware.FormSessionID(c)
	snap, err := h.contactUC.Form(c.Request.Context(), id)
	if err != nil {
		c.Error(sessionError(err))
		return
	}
	response.Success(c, http.StatusOK, "Contact form", newFormView(id, snap))
}

// UpdateFields godoc
// @Summary      Edit contact form fields
// @Description  Stores the given values verbatim. Editing a field clears its error.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        X-Form-Session  header    string               false  "Form session id"
// @Param        X-CSRF-Token    header    string               true   "CSRF token from the csrf_token cookie"
// @Param        fields          body      UpdateFieldsRequest  true   "Field edits"
// @Success      200             {object}  response.Response{data=FormView}
// @Failure      400             {object}  response.Response
// @Failure      404             {object}  response.Response
// @Router       /contact/form/fields [patch]
func (h *ContactHandler) UpdateFields(c *gin.Context) {
	var req UpdateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	values := make(map[domain.Field]string, len(req.Fields)+1)
	for name, value := range req.Fields {
		field, err := domain.ParseField(name)
		if err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		values[field] = value
	}
	if req.Field != "" {
		if req.Value == nil {
			c.Error(apperror.BadRequest("value is required when field is set"))
			return
		}
		field, err := domain.ParseField(req.Field)
		if err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		values[field] = *req.Value
	}
	if len(values) == 0 {
		c.Error(apperror.BadRequest("No fields to update"))
		return
	}

	id := middleware.FormSessionID(c)
	snap, err := h.contactUC.UpdateFields(c.Request.Context(), id, values)
	if err != nil {
		c.Error(sessionError(err))
		return
	}
	response.Success(c, http.StatusOK, "Form updated", newFormView(id, snap))
}

// Submit godoc
// @Summary      Submit contact form
// @Description  Validates the form and sends it. Only one submission per form can be in flight.
// @Tags         contact
// @Produce      json
// @Param        X-Form-Session  header    string  false  "Form session id"
// @Param        X-CSRF-Token    header    string  true   "CSRF token from the csrf_token cookie"
// @Success      200             {object}  response.Response{data=FormView}
// @Failure      409             {object}  response.Response{error=FormView}
// @Failure      422             {object}  response.Response{error=FormView}
// @Failure      429             {object}  response.Response
// @Failure      502             {object}  response.Response{error=FormView}
// @Router       /contact/form/submit [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	id := middleware.FormSessionID(c)
	result, snap, err := h.contactUC.Submit(c.Request.Context(), id)
	if err != nil {
		c.Error(sessionError(err))
		return
	}

	view := newFormView(id, snap)
	switch result.Outcome {
	case domain.OutcomeSubmitted:
		response.Success(c, http.StatusOK, "Thank you! We'll get back to you within 24 business hours.", view)
	case domain.OutcomeInvalid:
		c.Error(apperror.Unprocessable("Please correct the highlighted fields", view))
	case domain.OutcomeInFlight:
		c.Error(apperror.Conflict("A submission is already in progress").WithDetails(view))
	case domain.OutcomeAlreadySubmitted:
		c.Error(apperror.Conflict("This form was already sent. Reset it to send another message.").WithDetails(view))
	default:
		c.Error(apperror.BadGateway("We couldn't send your message. Please try again.", result.Err).WithDetails(view))
	}
}

// Reset godoc
// @Summary      Reset contact form
// @Description  Clears a submitted form so another message can be sent. Has no effect before a successful submission.
// @Tags         contact
// @Produce      json
// @Param        X-Form-Session  header    string  false  "Form session id"
// @Param        X-CSRF-Token    header    string  true   "CSRF token from the csrf_token cookie"
// @Success      200             {object}  response.Response{data=FormView}
// @Failure      404             {object}  response.Response
// @Router       /contact/form/reset [post]
func (h *ContactHandler) Reset(c *gin.Context) {
	id := middleware.FormSessionID(c)
	snap, err := h.contactUC.Reset(c.Request.Context(), id)
	if err != nil {
		c.Error(sessionError(err))
		return
	}
	response.Success(c, http.StatusOK, "Form reset", newFormView(id, snap))
}
