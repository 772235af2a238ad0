package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/services"
	"github.com/yeremiapane/service-booking/utils"
)

type AdminServiceController struct {
	Catalog *services.CatalogService
	AppURL  string
}

func NewAdminServiceController(catalog *services.CatalogService, appURL string) *AdminServiceController {
	return &AdminServiceController{Catalog: catalog, AppURL: appURL}
}

type serviceRequest struct {
	Name        string   `json:"name" binding:"required,notblank,max=255"`
	Category    string   `json:"category" binding:"required,service_category"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description string   `json:"description" binding:"max=2000"`
}

func (r serviceRequest) input() services.ServiceInput {
	return services.ServiceInput{
		Name:        strings.TrimSpace(r.Name),
		Category:    r.Category,
		Price:       *r.Price,
		Description: strings.TrimSpace(r.Description),
	}
}

// trashedScope -> ?trashed=with|only, default tanpa data terhapus
func trashedScope(c *gin.Context) (models.Scope, error) {
	switch c.Query("trashed") {
	case "":
		return models.ExcludeDeleted, nil
	case "with":
		return models.IncludeDeleted, nil
	case "only":
		return models.OnlyDeleted, nil
	default:
		return models.ExcludeDeleted, utils.ValidationError("Validation failed.", map[string][]string{
			"trashed": {"The selected trashed is invalid."},
		})
	}
}

// Index -> daftar service (tanpa cache) untuk admin
func (ac *AdminServiceController) Index(c *gin.Context) {
	page, perPage, err := pageParams(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	scope, err := trashedScope(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := ac.Catalog.List(c.Request.Context(), page, perPage, scope, pageBaseURL(c, ac.AppURL))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Services retrieved successfully.", result)
}

func (ac *AdminServiceController) Store(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	service, err := ac.Catalog.Create(c.Request.Context(), req.input())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Service created successfully.", service)
}

func (ac *AdminServiceController) Show(c *gin.Context) {
	service, err := ac.Catalog.Get(c.Request.Context(), c.Param("service_id"), models.ExcludeDeleted)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Service retrieved successfully.", service)
}

func (ac *AdminServiceController) Update(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	service, err := ac.Catalog.Update(c.Request.Context(), c.Param("service_id"), req.input())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Service updated (ID=%s)", service.ID)
	utils.RespondJSON(c, http.StatusOK, "Service updated successfully.", service)
}

// Destroy -> soft delete, bisa dipulihkan lewat Restore
func (ac *AdminServiceController) Destroy(c *gin.Context) {
	id := c.Param("service_id")
	if err := ac.Catalog.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Service deleted (ID=%s)", id)
	utils.RespondJSON(c, http.StatusOK, "Service deleted successfully.", nil)
}

func (ac *AdminServiceController) Restore(c *gin.Context) {
	service, err := ac.Catalog.Restore(c.Request.Context(), c.Param("service_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Service restored (ID=%s)", service.ID)
	utils.RespondJSON(c, http.StatusOK, "Service restored successfully.", service)
}
