package v1

import (
	"net/http"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterPaymentTypeRoutes registers the routes for payment types with
// the RouterGroup that is passed.
func RegisterPaymentTypeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPaymentTypeList)
		r.GET("", GetPaymentTypes)
		r.POST("", CreatePaymentTypes)
	}

	// Payment type with ID
	{
		r.OPTIONS("/:id", OptionsPaymentTypeDetail)
		r.GET("/:id", GetPaymentType)
		r.PATCH("/:id", UpdatePaymentType)
		r.DELETE("/:id", DeletePaymentType)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			PaymentTypes
// @Success		204
// @Router			/v1/payment-types [options]
func OptionsPaymentTypeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			PaymentTypes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payment-types/{id} [options]
func OptionsPaymentTypeDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.PaymentType{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create payment types
// @Description	Creates new payment types
// @Tags			PaymentTypes
// @Produce		json
// @Success		201				{object}	PaymentTypeCreateResponse
// @Failure		400				{object}	PaymentTypeCreateResponse
// @Failure		500				{object}	PaymentTypeCreateResponse
// @Param			paymentTypes	body		[]PaymentTypeEditable	true	"Payment Types"
// @Param			X-User-ID		header		string					false	"Owner of the payment types"
// @Router			/v1/payment-types [post]
func CreatePaymentTypes(c *gin.Context) {
	ownerID, err := owner(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PaymentTypeCreateResponse{Error: &e})
		return
	}

	var editables []PaymentTypeEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentTypeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PaymentTypeCreateResponse{}

	for _, editable := range editables {
		paymentType := editable.model(ownerID)

		err = models.DB.Create(&paymentType).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPaymentType(c, paymentType)
		r.Data = append(r.Data, PaymentTypeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get payment types
// @Description	Returns a list of payment types
// @Tags			PaymentTypes
// @Produce		json
// @Success		200	{object}	PaymentTypeListResponse
// @Failure		400	{object}	PaymentTypeListResponse
// @Failure		500	{object}	PaymentTypeListResponse
// @Router			/v1/payment-types [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			isCredit	query	bool	false	"Is this a credit instrument?"
// @Param			archived	query	bool	false	"Is the payment type archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Payment Type returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Payment Types to return. Defaults to 50."
// @Param			X-User-ID	header	string	false	"Owner of the payment types"
func GetPaymentTypes(c *gin.Context) {
	ownerID, err := owner(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PaymentTypeListResponse{Error: &e})
		return
	}

	var filter PaymentTypeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("name ASC").
		Where("owner_id = ?", ownerID).
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	// Default to 50 Payment Types and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var paymentTypes []models.PaymentType
	err = q.Find(&paymentTypes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentTypeListResponse{
			Error: &e,
		})
		return
	}

	data := make([]PaymentType, 0, len(paymentTypes))
	for _, paymentType := range paymentTypes {
		data = append(data, newPaymentType(c, paymentType))
	}

	c.JSON(http.StatusOK, PaymentTypeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get payment type
// @Description	Returns a specific payment type
// @Tags			PaymentTypes
// @Produce		json
// @Success		200	{object}	PaymentTypeResponse
// @Failure		400	{object}	PaymentTypeResponse
// @Failure		404	{object}	PaymentTypeResponse
// @Failure		500	{object}	PaymentTypeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payment-types/{id} [get]
func GetPaymentType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeResponse{
			Error: &s,
		})
		return
	}

	var paymentType models.PaymentType
	err = models.DB.First(&paymentType, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeResponse{
			Error: &s,
		})
		return
	}

	data := newPaymentType(c, paymentType)
	c.JSON(http.StatusOK, PaymentTypeResponse{Data: &data})
}

// @Summary		Update payment type
// @Description	Update an existing payment type. Only values to be updated need to be specified.
// @Tags			PaymentTypes
// @Accept			json
// @Produce		json
// @Success		200			{object}	PaymentTypeResponse
// @Failure		400			{object}	PaymentTypeResponse
// @Failure		404			{object}	PaymentTypeResponse
// @Failure		500			{object}	PaymentTypeResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			paymentType	body		PaymentTypeEditable	true	"Payment Type"
// @Router			/v1/payment-types/{id} [patch]
func UpdatePaymentType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeResponse{
			Error: &s,
		})
		return
	}

	var paymentType models.PaymentType
	err = models.DB.First(&paymentType, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PaymentTypeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeResponse{
			Error: &s,
		})
		return
	}

	var data PaymentTypeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&paymentType).Select("", updateFields...).Updates(data.model(paymentType.OwnerID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentTypeResponse{
			Error: &s,
		})
		return
	}

	r := newPaymentType(c, paymentType)
	c.JSON(http.StatusOK, PaymentTypeResponse{Data: &r})
}

// @Summary		Delete payment type
// @Description	Deletes a payment type
// @Tags			PaymentTypes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payment-types/{id} [delete]
func DeletePaymentType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var paymentType models.PaymentType
	err = models.DB.First(&paymentType, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&paymentType).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
