package v1

import (
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	cv_uuid "github.com/centavo-app/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InstallmentLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/installments/f3c4c4a9-27b8-49b6-bb7a-9dd4a721cb7e"`          // The installment payment itself
	Transaction string `json:"transaction" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a7673"` // The transaction the installment belongs to
}

// Installment is one scheduled sub-payment of a transaction.
type Installment struct {
	models.DefaultModel
	TransactionID uuid.UUID        `json:"transactionId" example:"d430d7c3-d14c-4712-9336-ee56965a7673"` // ID of the transaction the installment belongs to
	PaymentTypeID uuid.UUID        `json:"paymentTypeId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the payment type
	Amount        decimal.Decimal  `json:"amount" example:"48.67"`                                       // Amount of this installment
	DueDate       time.Time        `json:"dueDate" example:"2024-03-11T12:00:00Z"`                       // Date the installment is due
	Number        int              `json:"number" example:"1"`                                           // 1-based position in the installment plan
	Total         int              `json:"total" example:"3"`                                            // Total number of installments in the plan
	Links         InstallmentLinks `json:"links"`
}

func newInstallment(c *gin.Context, model models.InstallmentPayment) Installment {
	url := httputil.RequestHost(c)

	return Installment{
		DefaultModel:  model.DefaultModel,
		TransactionID: model.TransactionID,
		PaymentTypeID: model.PaymentTypeID,
		Amount:        model.Amount,
		DueDate:       model.DueDate,
		Number:        model.Number,
		Total:         model.Total,
		Links: InstallmentLinks{
			Self:        fmt.Sprintf("%s/v1/installments/%s", url, model.ID),
			Transaction: fmt.Sprintf("%s/v1/transactions/%s", url, model.TransactionID),
		},
	}
}

type InstallmentListResponse struct {
	Data       []Installment `json:"data"`                                                          // List of Installments
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type InstallmentResponse struct {
	Data  *Installment `json:"data"`                                                          // Data for the Installment
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type InstallmentQueryFilter struct {
	TransactionID cv_uuid.UUID `form:"transaction"`                   // By ID of the transaction
	PaymentTypeID cv_uuid.UUID `form:"paymentType"`                   // By ID of the payment type
	FromDate      time.Time    `form:"fromDate" filterField:"false"`  // Installments due at or after this date
	UntilDate     time.Time    `form:"untilDate" filterField:"false"` // Installments due at or before this date
	Offset        uint         `form:"offset" filterField:"false"`    // The offset of the first Installment returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`     // Maximum number of Installments to return. Defaults to 50.
}

func (f InstallmentQueryFilter) model() models.InstallmentPayment {
	return models.InstallmentPayment{
		TransactionID: f.TransactionID.UUID,
		PaymentTypeID: f.PaymentTypeID.UUID,
	}
}
