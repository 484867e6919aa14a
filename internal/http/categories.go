package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/apperr"
	"github.com/imeelinew/paper-library/internal/audit"
	"github.com/imeelinew/paper-library/internal/auth"
	"github.com/imeelinew/paper-library/internal/database/categories"
	"github.com/imeelinew/paper-library/internal/entities"
)

type CategoriesController struct {
	categories *categories.Repository
	audit      *audit.Service
}

func NewCategoriesController(repo *categories.Repository, auditService *audit.Service) *CategoriesController {
	return &CategoriesController{categories: repo, audit: auditService}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/categories. Public; ordered by name with book
// counts.
func (cc *CategoriesController) List(c *gin.Context) {
	list, err := cc.categories.List()
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	respondOK(c, "ok", list)
}

// Create handles POST /api/categories.
func (cc *CategoriesController) Create(c *gin.Context) {
	name, ok := cc.bindName(c)
	if !ok {
		return
	}

	category := &entities.Category{Name: name}
	if err := cc.categories.Create(category); err != nil {
		respondError(c, translateCategoryError(err))
		return
	}

	cc.recordAudit(c, "create_category", category)
	respondOK(c, "created", category)
}

// Update handles PUT /api/categories/:id.
func (cc *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, apperr.NotFound("Category not found"))
		} else {
			respondError(c, apperr.Internal(err))
		}
		return
	}

	name, ok := cc.bindName(c)
	if !ok {
		return
	}

	category.Name = name
	if err := cc.categories.Update(category); err != nil {
		respondError(c, translateCategoryError(err))
		return
	}

	cc.recordAudit(c, "update_category", category)
	respondOK(c, "updated", category)
}

// Delete handles DELETE /api/categories/:id. Blocked while any book still
// references the category.
func (cc *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, apperr.NotFound("Category not found"))
		} else {
			respondError(c, apperr.Internal(err))
		}
		return
	}

	bookCount, err := cc.categories.CountBooks(category.ID)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if bookCount > 0 {
		respondError(c, apperr.Conflict("Category still has books"))
		return
	}

	if err := cc.categories.Delete(category.ID); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	cc.recordAudit(c, "delete_category", category)
	respondOK(c, "deleted", nil)
}

func (cc *CategoriesController) bindName(c *gin.Context) (string, bool) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Category name is required"))
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, apperr.Validation("Category name is required"))
		return "", false
	}
	return name, true
}

func (cc *CategoriesController) recordAudit(c *gin.Context, action string, category *entities.Category) {
	if identity, ok := auth.GetIdentity(c); ok {
		cc.audit.Record(&identity.ID, action, fmt.Sprintf("#%d %s", category.ID, category.Name))
	}
}

func translateCategoryError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Validation("Category name already exists")
	}
	return apperr.Internal(err)
}
