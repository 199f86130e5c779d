package v1

import (
	"net/http"
	"time"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/recurring"
	"github.com/gin-gonic/gin"
)

// RegisterProjectionRoutes registers the routes for cash flow
// projections with the RouterGroup that is passed.
func RegisterProjectionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsProjection)
		r.GET("", GetProjection)
	}
}

type ProjectionQuery struct {
	Months int `form:"months"` // Months after the current one to project. Defaults to 4
}

type ProjectionResponse struct {
	Data  []recurring.Item `json:"data"`                                                   // The projected payments, sorted by date
	Error *string          `json:"error" example:"the months parameter must be a positive integer"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Projections
// @Success		204
// @Router			/v1/projections [options]
func OptionsProjection(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get projection
// @Description	Projects the upcoming payments from installment plans and active recurring transactions, from the start of the current month to the end of the month the horizon ends in. The projection is a read model, nothing is written.
// @Tags			Projections
// @Produce		json
// @Success		200	{object}	ProjectionResponse
// @Failure		400	{object}	ProjectionResponse
// @Failure		500	{object}	ProjectionResponse
// @Router			/v1/projections [get]
// @Param			months		query	int		false	"Months after the current one to project. Defaults to 4"
// @Param			X-User-ID	header	string	false	"Owner of the projected resources"
func GetProjection(c *gin.Context) {
	ownerID, err := owner(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ProjectionResponse{Error: &e})
		return
	}

	var query ProjectionQuery
	err = c.Bind(&query)
	if err != nil || query.Months < 0 {
		e := errMonthsInvalid.Error()
		c.JSON(http.StatusBadRequest, ProjectionResponse{Error: &e})
		return
	}

	months := query.Months
	if months == 0 {
		months = recurring.DefaultHorizonMonths
	}

	items, err := recurring.Project(models.DB, ownerID, time.Now().In(time.UTC), months)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ProjectionResponse{Data: items})
}
