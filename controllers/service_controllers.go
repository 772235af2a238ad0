package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/services"
	"github.com/yeremiapane/service-booking/utils"
)

type ServiceController struct {
	Catalog *services.CatalogService
	AppURL  string
}

func NewServiceController(catalog *services.CatalogService, appURL string) *ServiceController {
	return &ServiceController{Catalog: catalog, AppURL: appURL}
}

// Index lists active services, cached per (page, per_page) for the catalog's
// cache TTL. Newly created or edited services can take that long to show up.
func (sc *ServiceController) Index(c *gin.Context) {
	page, perPage, err := pageParams(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, src, err := sc.Catalog.ListPublic(c.Request.Context(), page, perPage, pageBaseURL(c, sc.AppURL))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	markSource(c, src)
	message := "Services retrieved from database."
	if src.Hit() {
		message = "Services retrieved from cache."
	}
	utils.RespondJSON(c, http.StatusOK, message, result)
}
