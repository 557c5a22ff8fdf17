package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/response"
)

const (
	listTemplate   = "author_list.html"
	detailTemplate = "author_detail.html"
	formTemplate   = "author_form.html"
	deleteTemplate = "author_delete.html"

	listPath = "/authors"
)

// AuthorHandler serves the server-rendered author pages. Failures it does
// not recover from are recorded with c.Error for the error dispatcher.
type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, listTemplate, gin.H{
		"Title":   "Author List",
		"Authors": authors,
	})
}

// ════════════════════════════════════════════════════════════════
// DETAIL: GET /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Detail(c *gin.Context) {
	id, err := parseAuthorID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	a, books, err := h.service.GetWithBooks(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, detailTemplate, gin.H{
		"Title":  "Author Detail",
		"Author": a,
		"Books":  books,
	})
}

// ════════════════════════════════════════════════════════════════
// CREATE: GET/POST /authors/create
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) CreateForm(c *gin.Context) {
	response.Page(c, formTemplate, gin.H{
		"Title": "Create Author",
	})
}

func (h *AuthorHandler) Create(c *gin.Context) {
	form, err := bindAuthorForm(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	candidate := form.ToEntity(uuid.Nil)
	if verr := form.Validate(); verr != nil {
		response.Page(c, formTemplate, gin.H{
			"Title":  "Create Author",
			"Author": candidate,
			"Errors": model.ErrorMessages(verr),
		})
		return
	}

	created, err := h.service.Create(c.Request.Context(), candidate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Redirect(c, created.URL())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: GET/POST /authors/:id/update
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) UpdateForm(c *gin.Context) {
	id, err := parseAuthorID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, formTemplate, gin.H{
		"Title":  "Update Author",
		"Author": a,
	})
}

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := parseAuthorID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	form, err := bindAuthorForm(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// The candidate keeps the path id so an update never creates a record.
	candidate := form.ToEntity(id)
	if verr := form.Validate(); verr != nil {
		response.Page(c, formTemplate, gin.H{
			"Title":  "Update Author",
			"Author": candidate,
			"Errors": model.ErrorMessages(verr),
		})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), candidate); err != nil {
		_ = c.Error(err)
		return
	}

	response.Redirect(c, candidate.URL())
}

// ════════════════════════════════════════════════════════════════
// DELETE: GET/POST /authors/:id/delete
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) DeleteForm(c *gin.Context) {
	id, err := parseAuthorID(c)
	if err != nil {
		response.Redirect(c, listPath)
		return
	}

	a, books, err := h.service.GetWithBooks(c.Request.Context(), id)
	if errors.Is(err, model.ErrAuthorNotFound) {
		response.Redirect(c, listPath)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, deleteTemplate, gin.H{
		"Title":  "Delete Author",
		"Author": a,
		"Books":  books,
	})
}

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := parseAuthorID(c)
	if err != nil {
		response.Redirect(c, listPath)
		return
	}

	err = h.service.Delete(c.Request.Context(), id)

	var blocked *model.DeleteBlockedError
	switch {
	case err == nil, errors.Is(err, model.ErrAuthorNotFound):
		response.Redirect(c, listPath)
	case errors.As(err, &blocked):
		response.Page(c, deleteTemplate, gin.H{
			"Title":  "Delete Author",
			"Author": blocked.Author,
			"Books":  blocked.Books,
		})
	default:
		_ = c.Error(err)
	}
}

// ════════════════════════════════════════════════════════════════
// ROUTES REGISTRATION
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) RegisterRoutes(rg gin.IRouter) {
	authors := rg.Group(listPath)
	{
		authors.GET("", h.List)
		authors.GET("/create", h.CreateForm)
		authors.POST("/create", h.Create)
		authors.GET("/:id", h.Detail)
		authors.GET("/:id/update", h.UpdateForm)
		authors.POST("/:id/update", h.Update)
		authors.GET("/:id/delete", h.DeleteForm)
		authors.POST("/:id/delete", h.Delete)
	}
}

// parseAuthorID treats a malformed id like an unknown one.
func parseAuthorID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, model.ErrAuthorNotFound
	}
	return id, nil
}

func bindAuthorForm(c *gin.Context) (model.AuthorForm, error) {
	var form model.AuthorForm
	if err := c.ShouldBind(&form); err != nil {
		return form, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	form.Sanitize()
	return form, nil
}
