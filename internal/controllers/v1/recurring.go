package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/recurring"
	"github.com/centavo-app/backend/internal/schedule"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTransactionList)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransactions)
	}

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTransactionDetail)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring-transactions [options]
func OptionsRecurringTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [options]
func OptionsRecurringTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.RecurringTransaction{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create recurring transactions
// @Description	Creates new recurring transactions. By default, all occurrences between the start date and today are materialized immediately; set backfill to false to only schedule future occurrences.
// @Tags			RecurringTransactions
// @Produce		json
// @Success		201						{object}	RecurringTransactionCreateResponse
// @Failure		400						{object}	RecurringTransactionCreateResponse
// @Failure		404						{object}	RecurringTransactionCreateResponse
// @Failure		500						{object}	RecurringTransactionCreateResponse
// @Param			recurringTransactions	body		[]RecurringTransactionEditable	true	"Recurring Transactions"
// @Param			X-User-ID				header		string							false	"Owner of the recurring transactions"
// @Router			/v1/recurring-transactions [post]
func CreateRecurringTransactions(c *gin.Context) {
	ownerID, err := owner(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringTransactionCreateResponse{Error: &e})
		return
	}

	var editables []RecurringTransactionEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringTransactionCreateResponse{}

	now := time.Now().In(time.UTC)

	for _, editable := range editables {
		template := editable.model(ownerID)

		// New schedules always start active
		template.Active = true
		template.StartDate = schedule.AtNoon(template.StartDate.In(time.UTC))

		backfill := editable.Backfill == nil || *editable.Backfill

		if backfill {
			// The catch-up below walks the cursor from the start
			// date to today
			cursor := template.StartDate
			template.NextDueDate = &cursor
		} else {
			cursor, err := schedule.InitializeNextDueDate(template.StartDate, now, template.Frequency)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
			template.NextDueDate = &cursor
		}

		err = models.DB.Create(&template).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		if backfill {
			_, err = recurring.CatchUpTemplate(models.DB, template.ID, now, recurring.DefaultPerItemCap)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}

			// Re-read into a fresh struct so the response reflects the
			// advanced cursor. A schedule that expired during its own
			// backfill has a NULL cursor, which would not overwrite the
			// non-nil pointer field on the reused struct
			var current models.RecurringTransaction
			err = models.DB.First(&current, template.ID).Error
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
			template = current
		}

		data := newRecurringTransaction(c, template)
		r.Data = append(r.Data, RecurringTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recurring transactions
// @Description	Returns a list of recurring transactions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionListResponse
// @Failure		400	{object}	RecurringTransactionListResponse
// @Failure		500	{object}	RecurringTransactionListResponse
// @Router			/v1/recurring-transactions [get]
// @Param			description	query	string	false	"Filter by description"
// @Param			kind		query	string	false	"Filter by kind"
// @Param			frequency	query	string	false	"Filter by frequency"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			paymentType	query	string	false	"Filter by payment type ID"
// @Param			active		query	bool	false	"Is the schedule active?"
// @Param			offset		query	uint	false	"The offset of the first Recurring Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Recurring Transactions to return. Defaults to 50."
// @Param			X-User-ID	header	string	false	"Owner of the recurring transactions"
func GetRecurringTransactions(c *gin.Context) {
	ownerID, err := owner(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringTransactionListResponse{Error: &e})
		return
	}

	var filter RecurringTransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("next_due_date ASC").
		Where("owner_id = ?", ownerID).
		Where(&filterModel, queryFields...)

	if filter.Description != "" {
		q = q.Where("description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 Recurring Transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var templates []models.RecurringTransaction
	err = q.Find(&templates).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecurringTransaction, 0, len(templates))
	for _, template := range templates {
		data = append(data, newRecurringTransaction(c, template))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Failure		500	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [get]
func GetRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var template models.RecurringTransaction
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	data := newRecurringTransaction(c, template)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Update recurring transaction
// @Description	Update an existing recurring transaction. Only values to be updated need to be specified. Reactivating a schedule whose cursor was cleared schedules the next occurrence from today.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200						{object}	RecurringTransactionResponse
// @Failure		400						{object}	RecurringTransactionResponse
// @Failure		404						{object}	RecurringTransactionResponse
// @Failure		500						{object}	RecurringTransactionResponse
// @Param			id						path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurringTransaction	body		RecurringTransactionEditable	true	"Recurring Transaction"
// @Router			/v1/recurring-transactions/{id} [patch]
func UpdateRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var template models.RecurringTransaction
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var data RecurringTransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	// Backfill is a creation-time flag, not a database column
	updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
		return field == "Backfill"
	})

	err = models.DB.Model(&template).Select("", updateFields...).Updates(data.model(template.OwnerID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	// A reactivated schedule needs its cursor back
	if template.Active && template.NextDueDate == nil {
		cursor, err := schedule.InitializeNextDueDate(template.StartDate, time.Now().In(time.UTC), template.Frequency)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), RecurringTransactionResponse{
				Error: &s,
			})
			return
		}

		template.NextDueDate = &cursor
		err = models.DB.Save(&template).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), RecurringTransactionResponse{
				Error: &s,
			})
			return
		}
	}

	r := newRecurringTransaction(c, template)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &r})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction. Transactions already generated from it are kept.
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [delete]
func DeleteRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var template models.RecurringTransaction
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
