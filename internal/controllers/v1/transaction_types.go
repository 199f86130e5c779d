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

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Description      string                `json:"description" example:"Groceries at the corner store" default:""`      // Description of the transaction
	Amount           decimal.Decimal       `json:"amount" example:"145.99" minimum:"0.00000001" multipleOf:"0.00000001"` // Amount of the transaction
	Kind             types.TransactionKind `json:"kind" example:"expense" default:"expense"`                            // Is this an expense or income?
	Date             time.Time             `json:"date" example:"2024-02-15T12:00:00Z"`                                 // Date of the transaction
	CategoryID       uuid.UUID             `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`           // ID of the category. Optional when a category rule matches the description
	PaymentTypeID    *uuid.UUID            `json:"paymentTypeId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`        // ID of the payment type
	InstallmentCount int                   `json:"installmentCount" example:"3" default:"1"`                            // Number of installments the amount is split into
	Verified         bool                  `json:"verified" example:"true" default:"false"`                             // Has the transaction been verified against a statement?
}

func (editable TransactionEditable) model(owner uuid.UUID) models.Transaction {
	return models.Transaction{
		OwnerID:          owner,
		Description:      editable.Description,
		Amount:           editable.Amount,
		Kind:             editable.Kind,
		Date:             editable.Date,
		CategoryID:       editable.CategoryID,
		PaymentTypeID:    editable.PaymentTypeID,
		InstallmentCount: editable.InstallmentCount,
		Verified:         editable.Verified,
	}
}

type TransactionLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a7673"`                      // The transaction itself
	Installments string `json:"installments" example:"https://example.com/api/v1/installments?transaction=d430d7c3-d14c-4712-9336-ee56965a7673"` // The installment payments of the transaction
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	CategoryName           string     `json:"categoryName" example:"Groceries"`                                      // Name of the category at creation time
	RecurringTransactionID *uuid.UUID `json:"recurringTransactionId" example:"a6e26a4c-80db-4c54-8c53-14fdc8fd4c7b"` // Set when the transaction was generated from a recurring transaction
	Links                  TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := httputil.RequestHost(c)

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Description:      model.Description,
			Amount:           model.Amount,
			Kind:             model.Kind,
			Date:             model.Date,
			CategoryID:       model.CategoryID,
			PaymentTypeID:    model.PaymentTypeID,
			InstallmentCount: model.InstallmentCount,
			Verified:         model.Verified,
		},
		CategoryName:           model.CategoryName,
		RecurringTransactionID: model.RecurringTransactionID,
		Links: TransactionLinks{
			Self:         fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Installments: fmt.Sprintf("%s/v1/installments?transaction=%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Description            string                `form:"description" filterField:"false"` // By description
	Kind                   types.TransactionKind `form:"kind"`                            // By kind
	CategoryID             cv_uuid.UUID          `form:"category"`                        // By ID of the category
	PaymentTypeID          cv_uuid.UUID          `form:"paymentType"`                     // By ID of the payment type
	RecurringTransactionID cv_uuid.UUID          `form:"recurring"`                       // By ID of the recurring transaction the transaction was generated from
	Verified               bool                  `form:"verified"`                        // Is the transaction verified?
	FromDate               time.Time             `form:"fromDate" filterField:"false"`    // Transactions at or after this date
	UntilDate              time.Time             `form:"untilDate" filterField:"false"`   // Transactions at or before this date
	Offset                 uint                  `form:"offset" filterField:"false"`      // The offset of the first Transaction returned. Defaults to 0.
	Limit                  int                   `form:"limit" filterField:"false"`       // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	var paymentTypeID *uuid.UUID
	if f.PaymentTypeID.UUID != uuid.Nil {
		paymentTypeID = &f.PaymentTypeID.UUID
	}

	var recurringID *uuid.UUID
	if f.RecurringTransactionID.UUID != uuid.Nil {
		recurringID = &f.RecurringTransactionID.UUID
	}

	return models.Transaction{
		Kind:                   f.Kind,
		CategoryID:             f.CategoryID.UUID,
		PaymentTypeID:          paymentTypeID,
		RecurringTransactionID: recurringID,
		Verified:               f.Verified,
	}
}
