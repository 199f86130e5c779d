package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InstallmentPayment is one scheduled sub-payment of a transaction that
// was split into installments. For a given transaction the installment
// amounts sum exactly to the transaction amount.
type InstallmentPayment struct {
	DefaultModel
	OwnerID       uuid.UUID `gorm:"index"`
	TransactionID uuid.UUID `gorm:"index"`
	Transaction   Transaction
	PaymentTypeID uuid.UUID
	PaymentType   PaymentType
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DueDate       time.Time       `gorm:"index"`
	Number        int             // 1-based position in the installment plan
	Total         int             // Total number of installments in the plan
}

// AfterFind enforces dates to be in UTC.
func (i *InstallmentPayment) AfterFind(tx *gorm.DB) (err error) {
	err = i.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	i.DueDate = i.DueDate.In(time.UTC)
	return
}

func (i *InstallmentPayment) BeforeSave(_ *gorm.DB) error {
	if i.Number < 1 {
		return ErrInstallmentNumberTooSmall
	}

	i.DueDate = i.DueDate.In(time.UTC)
	return nil
}

// Returns all installment payments on this instance for export
func (InstallmentPayment) Export() (json.RawMessage, error) {
	var installments []InstallmentPayment
	err := DB.Unscoped().Where(&InstallmentPayment{}).Find(&installments).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&installments)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
