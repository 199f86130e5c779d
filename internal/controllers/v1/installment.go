package v1

import (
	"net/http"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterInstallmentRoutes registers the routes for installment
// payments with the RouterGroup that is passed. Installments are
// created through transactions and the generator, so the API is
// read-only.
func RegisterInstallmentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInstallmentList)
		r.GET("", GetInstallments)
	}

	// Installment with ID
	{
		r.OPTIONS("/:id", OptionsInstallmentDetail)
		r.GET("/:id", GetInstallment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Router			/v1/installments [options]
func OptionsInstallmentList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/installments/{id} [options]
func OptionsInstallmentDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.InstallmentPayment{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get installments
// @Description	Returns a list of installment payments
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentListResponse
// @Failure		400	{object}	InstallmentListResponse
// @Failure		500	{object}	InstallmentListResponse
// @Router			/v1/installments [get]
// @Param			transaction	query	string	false	"Filter by transaction ID"
// @Param			paymentType	query	string	false	"Filter by payment type ID"
// @Param			fromDate	query	string	false	"Installments due at or after this date"
// @Param			untilDate	query	string	false	"Installments due at or before this date"
// @Param			offset		query	uint	false	"The offset of the first Installment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Installments to return. Defaults to 50."
// @Param			X-User-ID	header	string	false	"Owner of the installments"
func GetInstallments(c *gin.Context) {
	ownerID, err := owner(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, InstallmentListResponse{Error: &e})
		return
	}

	var filter InstallmentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("due_date ASC").
		Where("owner_id = ?", ownerID).
		Where(&filterModel, queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("due_date >= ?", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("due_date <= ?", filter.UntilDate)
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 Installments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var installments []models.InstallmentPayment
	err = q.Find(&installments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Installment, 0, len(installments))
	for _, installment := range installments {
		data = append(data, newInstallment(c, installment))
	}

	c.JSON(http.StatusOK, InstallmentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get installment
// @Description	Returns a specific installment payment
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentResponse
// @Failure		400	{object}	InstallmentResponse
// @Failure		404	{object}	InstallmentResponse
// @Failure		500	{object}	InstallmentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/installments/{id} [get]
func GetInstallment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var installment models.InstallmentPayment
	err = models.DB.First(&installment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	data := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &data})
}
