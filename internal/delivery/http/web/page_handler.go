// Package web renders the marketing pages and the no-JavaScript contact form.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"nymble-website/internal/delivery/http/middleware"
	"nymble-website/internal/domain"
	"nymble-website/pkg/content"
	"nymble-website/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	contactPath      = "/contact"
	contactResetPath = "/contact/reset"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type PageHandler struct {
	site      *content.Site
	contactUC domain.ContactUsecase
	siteURL   string
}

// NewPageHandler parses the templates and registers a route per content page
// plus the contact form routes.
func NewPageHandler(r *gin.Engine, site *content.Site, contactUC domain.ContactUsecase, sessions, submitLimiter gin.HandlerFunc, siteURL string) (*PageHandler, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	handler := &PageHandler{
		site:      site,
		contactUC: contactUC,
		siteURL:   siteURL,
	}

	for i := range site.Pages {
		page := &site.Pages[i]
		if page.Path == contactPath {
			continue
		}
		r.GET(page.Path, handler.Page(page))
	}

	contact := r.Group(contactPath, sessions)
	{
		contact.GET("", handler.Contact)
		contact.POST("", submitLimiter, handler.SubmitContact)
		contact.POST("/reset", handler.ResetContact)
	}

	return handler, nil
}

// ParseTemplates loads the embedded page templates
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

type navLink struct {
	Label  string
	Path   string
	Active bool
}

// pageView is the data every template receives
type pageView struct {
	Meta        content.Meta
	Nav         []navLink
	Footer      []content.FooterColumn
	Page        *content.Page
	Title       string
	Description string
	URL         string
	CSRFToken   string
	Year        int
	Contact     *contactView
	Status      *statusView
}

type contactView struct {
	Fields          domain.ContactForm
	Errors          map[string]string
	State           domain.SubmissionState
	InterestOptions []domain.Option
	SourceOptions   []domain.Option
	ResetPath       string
}

func (v *contactView) Submitted() bool  { return v.State.Status == domain.StatusSubmitted }
func (v *contactView) Submitting() bool { return v.State.Status == domain.StatusSubmitting }
func (v *contactView) Failed() bool     { return v.State.Status == domain.StatusFailed }

type statusView struct {
	Code    int
	Heading string
	Message string
}

func (h *PageHandler) view(c *gin.Context, page *content.Page, activePath string) pageView {
	nav := make([]navLink, 0, len(h.site.Nav))
	for _, l := range h.site.Nav {
		nav = append(nav, navLink{Label: l.Label, Path: l.Path, Active: l.Path == activePath})
	}

	v := pageView{
		Meta:      h.site.Meta,
		Nav:       nav,
		Footer:    h.site.Footer,
		Page:      page,
		Title:     h.site.Meta.Title,
		CSRFToken: c.GetString(string(domain.KeyCSRFToken)),
		Year:      time.Now().Year(),
	}
	v.Description = h.site.Meta.Description
	if page != nil {
		v.Title = page.Title
		if page.Description != "" {
			v.Description = page.Description
		}
		v.URL = h.siteURL + page.Path
	}
	return v
}

// Page renders a content page
func (h *PageHandler) Page(page *content.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "page", h.view(c, page, page.Path))
	}
}

// NotFound renders the 404 page inside the site shell
func (h *PageHandler) NotFound(c *gin.Context) {
	h.status(c, http.StatusNotFound, "Page not found", "The page you are looking for doesn't exist or has moved.")
}

func (h *PageHandler) status(c *gin.Context, code int, heading, message string) {
	v := h.view(c, nil, "")
	v.Title = heading + " | " + h.site.Meta.Name
	v.Status = &statusView{Code: code, Heading: heading, Message: message}
	c.HTML(code, "status", v)
}

func (h *PageHandler) contactPage() *content.Page {
	if page, ok := h.site.Page(contactPath); ok {
		return page
	}
	return &content.Page{Slug: "contact", Path: contactPath, Title: "Contact | " + h.site.Meta.Name}
}

func (h *PageHandler) renderContact(c *gin.Context, code int, snap domain.FormSnapshot) {
	v := h.view(c, h.contactPage(), contactPath)
	v.Contact = &contactView{
		Fields:          snap.Fields,
		Errors:          snap.Errors.Messages(),
		State:           snap.State,
		InterestOptions: domain.InterestOptions,
		SourceOptions:   domain.SourceOptions,
		ResetPath:       contactResetPath,
	}
	c.HTML(code, "contact", v)
}

func (h *PageHandler) sessionFailed(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		h.status(c, http.StatusNotFound, "Form expired", "Your form session expired. Please open the contact page again.")
		return
	}
	logger.Log.Error("Contact page failed",
		"request_id", c.GetString(string(domain.KeyRequestID)),
		"error", err,
	)
	h.status(c, http.StatusInternalServerError, "Something went wrong", "Please try again in a moment.")
}

// Contact renders the form with its current values, errors and state
func (h *PageHandler) Contact(c *gin.Context) {
	snap, err := h.contactUC.Form(c.Request.Context(), middleware.FormSessionID(c))
	if err != nil {
		h.sessionFailed(c, err)
		return
	}
	h.renderContact(c, http.StatusOK, snap)
}

// SubmitContact applies every posted field and submits the form
func (h *PageHandler) SubmitContact(c *gin.Context) {
	var form domain.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		h.status(c, http.StatusBadRequest, "Bad request", "We couldn't read the form. Please try again.")
		return
	}

	ctx := c.Request.Context()
	id := middleware.FormSessionID(c)
	if _, err := h.contactUC.UpdateFields(ctx, id, form.Values()); err != nil {
		h.sessionFailed(c, err)
		return
	}

	result, snap, err := h.contactUC.Submit(ctx, id)
	if err != nil {
		h.sessionFailed(c, err)
		return
	}

	code := http.StatusOK
	switch result.Outcome {
	case domain.OutcomeInvalid:
		code = http.StatusUnprocessableEntity
	case domain.OutcomeFailed:
		code = http.StatusBadGateway
	}
	h.renderContact(c, code, snap)
}

// ResetContact starts a fresh form after a successful submission
func (h *PageHandler) ResetContact(c *gin.Context) {
	if _, err := h.contactUC.Reset(c.Request.Context(), middleware.FormSessionID(c)); err != nil {
		h.sessionFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, contactPath)
}
