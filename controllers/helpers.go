package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/cache"
	"github.com/yeremiapane/service-booking/utils"
)

// pageParams validates ?page and ?per_page before anything touches the store.
func pageParams(c *gin.Context) (int, int, error) {
	return utils.ParsePageParams(c.Query("page"), c.Query("per_page"))
}

// pageBaseURL is the absolute URL of the current path, used for the
// first/last/next/prev links of a page. appURL wins over the request host.
func pageBaseURL(c *gin.Context, appURL string) string {
	if appURL != "" {
		return strings.TrimRight(appURL, "/") + c.Request.URL.Path
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.Path
}

// markSource tags the response with where the payload came from.
func markSource(c *gin.Context, src cache.Source) {
	if src.Hit() {
		c.Header("X-Cache", "HIT")
		return
	}
	c.Header("X-Cache", "MISS")
}
