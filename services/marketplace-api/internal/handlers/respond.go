package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
)

// respondError maps err onto its status. Only 5xx causes reach the log.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if apperr.HTTPStatus(kind) >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", middlewares.RequestIDFrom(c)).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	_ = c.Error(err)
	middlewares.Abort(c, err)
}

func ok(c *gin.Context, status int, body gin.H) {
	body["success"] = true
	c.JSON(status, body)
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return false
	}
	return true
}

func caller(c *gin.Context) (string, domain.Role) {
	return middlewares.Subject(c), domain.Role(middlewares.Role(c))
}
