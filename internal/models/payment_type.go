package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentType is a way of paying: cash, a debit account or a credit
// card. Credit payment types carry the billing cycle configuration used
// to compute installment due dates.
type PaymentType struct {
	DefaultModel
	OwnerID    uuid.UUID `gorm:"index;uniqueIndex:payment_type_owner_name"`
	Name       string    `gorm:"uniqueIndex:payment_type_owner_name"`
	Note       string
	IsCredit   bool
	ClosingDay int // Day of month the statement closes, 1 to 31
	DueDay     int // Nominal day of month the statement is due, 1 to 31
	Archived   bool
}

func (p *PaymentType) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	if !p.IsCredit {
		return nil
	}

	if p.ClosingDay == 0 || p.DueDay == 0 {
		return ErrCreditFieldsIncomplete
	}

	if p.ClosingDay < 1 || p.ClosingDay > 31 || p.DueDay < 1 || p.DueDay > 31 {
		return ErrCreditDayOutOfRange
	}

	return nil
}

// CreditTerms returns the billing cycle configuration. ok is false for
// payment types that are not credit instruments.
func (p PaymentType) CreditTerms() (closingDay, dueDay int, ok bool) {
	if !p.IsCredit || p.ClosingDay == 0 || p.DueDay == 0 {
		return 0, 0, false
	}

	return p.ClosingDay, p.DueDay, true
}

// Returns all payment types on this instance for export
func (PaymentType) Export() (json.RawMessage, error) {
	var paymentTypes []PaymentType
	err := DB.Unscoped().Where(&PaymentType{}).Find(&paymentTypes).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&paymentTypes)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
