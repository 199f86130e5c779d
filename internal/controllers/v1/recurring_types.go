package v1

import (
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	cv_uuid "github.com/centavo-app/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringTransactionEditable represents all user configurable parameters
type RecurringTransactionEditable struct {
	Description      string                `json:"description" example:"Rent" default:""`                               // Description of the recurring transaction
	Amount           decimal.Decimal       `json:"amount" example:"1250" minimum:"0.00000001" multipleOf:"0.00000001"`  // Amount of each occurrence
	Kind             types.TransactionKind `json:"kind" example:"expense" default:"expense"`                            // Is this an expense or income?
	Frequency        types.Frequency       `json:"frequency" example:"monthly"`                                         // How often the transaction recurs
	CategoryID       uuid.UUID             `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`           // ID of the category
	PaymentTypeID    *uuid.UUID            `json:"paymentTypeId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`        // ID of the payment type. Required for expenses
	StartDate        time.Time             `json:"startDate" example:"2024-01-31T12:00:00Z"`                            // First occurrence. Its day of month anchors month-based stepping
	EndDate          *time.Time            `json:"endDate" example:"2024-12-31T12:00:00Z"`                              // Last possible occurrence, unset for open-ended schedules
	InstallmentCount int                   `json:"installmentCount" example:"1" default:"1"`                            // Number of installments each occurrence is split into
	Active           bool                  `json:"active" example:"true" default:"true"`                                // Is the schedule active?
	Backfill         *bool                 `json:"backfill" example:"false" default:"true"`                             // Materialize occurrences between the start date and today on creation. Only used on creation
}

func (editable RecurringTransactionEditable) model(owner uuid.UUID) models.RecurringTransaction {
	return models.RecurringTransaction{
		OwnerID:          owner,
		Description:      editable.Description,
		Amount:           editable.Amount,
		Kind:             editable.Kind,
		Frequency:        editable.Frequency,
		CategoryID:       editable.CategoryID,
		PaymentTypeID:    editable.PaymentTypeID,
		StartDate:        editable.StartDate,
		EndDate:          editable.EndDate,
		InstallmentCount: editable.InstallmentCount,
		Active:           editable.Active,
	}
}

type RecurringTransactionLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/recurring-transactions/a6e26a4c-80db-4c54-8c53-14fdc8fd4c7b"`              // The recurring transaction itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?recurring=a6e26a4c-80db-4c54-8c53-14fdc8fd4c7b"` // Transactions generated from this recurring transaction
}

type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
	LastProcessedDate *time.Time                `json:"lastProcessedDate" example:"2024-05-31T12:00:00Z"` // Date of the most recently materialized occurrence
	NextDueDate       *time.Time                `json:"nextDueDate" example:"2024-06-30T12:00:00Z"`       // Next occurrence to materialize, unset once the schedule has run out
	Links             RecurringTransactionLinks `json:"links"`
}

func newRecurringTransaction(c *gin.Context, model models.RecurringTransaction) RecurringTransaction {
	url := httputil.RequestHost(c)

	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			Description:      model.Description,
			Amount:           model.Amount,
			Kind:             model.Kind,
			Frequency:        model.Frequency,
			CategoryID:       model.CategoryID,
			PaymentTypeID:    model.PaymentTypeID,
			StartDate:        model.StartDate,
			EndDate:          model.EndDate,
			InstallmentCount: model.InstallmentCount,
			Active:           model.Active,
		},
		LastProcessedDate: model.LastProcessedDate,
		NextDueDate:       model.NextDueDate,
		Links: RecurringTransactionLinks{
			Self:         fmt.Sprintf("%s/v1/recurring-transactions/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?recurring=%s", url, model.ID),
		},
	}
}

type RecurringTransactionListResponse struct {
	Data       []RecurringTransaction `json:"data"`                                                          // List of Recurring Transactions
	Error      *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination            `json:"pagination"`                                                    // Pagination information
}

type RecurringTransactionCreateResponse struct {
	Data  []RecurringTransactionResponse `json:"data"`                                                          // List of the created Recurring Transactions or their respective error
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecurringTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringTransactionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTransactionResponse struct {
	Data  *RecurringTransaction `json:"data"`                                                          // Data for the Recurring Transaction
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTransactionQueryFilter struct {
	Description   string       `form:"description" filterField:"false"` // By description
	Kind          string       `form:"kind"`                            // By kind
	Frequency     string       `form:"frequency"`                       // By frequency
	CategoryID    cv_uuid.UUID `form:"category"`                        // By ID of the category
	PaymentTypeID cv_uuid.UUID `form:"paymentType"`                     // By ID of the payment type
	Active        bool         `form:"active"`                          // Is the schedule active?
	Offset        uint         `form:"offset" filterField:"false"`      // The offset of the first Recurring Transaction returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`       // Maximum number of Recurring Transactions to return. Defaults to 50.
}

func (f RecurringTransactionQueryFilter) model() models.RecurringTransaction {
	var paymentTypeID *uuid.UUID
	if f.PaymentTypeID.UUID != uuid.Nil {
		paymentTypeID = &f.PaymentTypeID.UUID
	}

	return models.RecurringTransaction{
		Kind:          types.TransactionKind(f.Kind),
		Frequency:     types.Frequency(f.Frequency),
		CategoryID:    f.CategoryID.UUID,
		PaymentTypeID: paymentTypeID,
		Active:        f.Active,
	}
}
