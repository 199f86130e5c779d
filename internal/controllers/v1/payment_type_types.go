package v1

import (
	"fmt"

	"github.com/centavo-app/backend/internal/httputil"
	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentTypeEditable represents all user configurable parameters
type PaymentTypeEditable struct {
	Name       string `json:"name" example:"Gold credit card" default:""`          // Name of the payment type
	Note       string `json:"note" example:"Closes on the 25th" default:""`        // Notes about the payment type
	IsCredit   bool   `json:"isCredit" example:"true" default:"false"`             // Is this a credit instrument with a billing cycle?
	ClosingDay int    `json:"closingDay" example:"25" default:"0"`                 // Day of month the statement closes, 1 to 31
	DueDay     int    `json:"dueDay" example:"10" default:"0"`                     // Nominal day of month the statement is due, 1 to 31
	Archived   bool   `json:"archived" example:"true" default:"false"`             // Is the payment type archived?
}

func (editable PaymentTypeEditable) model(owner uuid.UUID) models.PaymentType {
	return models.PaymentType{
		OwnerID:    owner,
		Name:       editable.Name,
		Note:       editable.Note,
		IsCredit:   editable.IsCredit,
		ClosingDay: editable.ClosingDay,
		DueDay:     editable.DueDay,
		Archived:   editable.Archived,
	}
}

type PaymentTypeLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/payment-types/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                  // The payment type itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?paymentType=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions with this payment type
}

type PaymentType struct {
	models.DefaultModel
	PaymentTypeEditable
	Links PaymentTypeLinks `json:"links"`
}

func newPaymentType(c *gin.Context, model models.PaymentType) PaymentType {
	url := httputil.RequestHost(c)

	return PaymentType{
		DefaultModel: model.DefaultModel,
		PaymentTypeEditable: PaymentTypeEditable{
			Name:       model.Name,
			Note:       model.Note,
			IsCredit:   model.IsCredit,
			ClosingDay: model.ClosingDay,
			DueDay:     model.DueDay,
			Archived:   model.Archived,
		},
		Links: PaymentTypeLinks{
			Self:         fmt.Sprintf("%s/v1/payment-types/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?paymentType=%s", url, model.ID),
		},
	}
}

type PaymentTypeListResponse struct {
	Data       []PaymentType `json:"data"`                                                          // List of Payment Types
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type PaymentTypeCreateResponse struct {
	Data  []PaymentTypeResponse `json:"data"`                                                          // List of the created Payment Types or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PaymentTypeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PaymentTypeResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PaymentTypeResponse struct {
	Data  *PaymentType `json:"data"`                                                          // Data for the Payment Type
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PaymentTypeQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	IsCredit bool   `form:"isCredit"`                   // Is this a credit instrument?
	Archived bool   `form:"archived"`                   // Is the Payment Type archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Payment Type returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Payment Types to return. Defaults to 50.
}

func (f PaymentTypeQueryFilter) model() models.PaymentType {
	return models.PaymentType{
		IsCredit: f.IsCredit,
		Archived: f.Archived,
	}
}
