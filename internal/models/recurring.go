package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/centavo-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringTransaction is a standing obligation: rent, a subscription,
// an installment plan. The generator materializes one Transaction per
// occurrence and advances NextDueDate.
type RecurringTransaction struct {
	DefaultModel
	OwnerID     uuid.UUID `gorm:"index"`
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Kind        types.TransactionKind
	Frequency   types.Frequency
	CategoryID  uuid.UUID
	Category    Category
	// Optional, but required for expense recurring transactions
	PaymentTypeID *uuid.UUID
	PaymentType   PaymentType
	// Inclusive lower bound of the schedule. Its day of month is the
	// anchor day for month-based frequencies.
	StartDate time.Time
	// Inclusive upper bound of the schedule, nil when open-ended
	EndDate *time.Time
	// Date of the most recently materialized occurrence, nil when
	// nothing has been materialized yet
	LastProcessedDate *time.Time
	// Next occurrence to materialize, nil once the schedule has run out
	NextDueDate      *time.Time `gorm:"index:idx_recurring_due,priority:2"`
	Active           bool       `gorm:"index:idx_recurring_due,priority:1"`
	InstallmentCount int
}

// AnchorDay is the day of month fixed at creation that month-based
// stepping clamps to. It is always derived from the start date, never
// from intermediate occurrences, so clamped occurrences cannot make the
// schedule drift.
func (r RecurringTransaction) AnchorDay() int {
	return r.StartDate.Day()
}

// AfterFind enforces dates to be in UTC.
func (r *RecurringTransaction) AfterFind(tx *gorm.DB) (err error) {
	err = r.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	r.StartDate = r.StartDate.In(time.UTC)
	if r.EndDate != nil {
		*r.EndDate = r.EndDate.In(time.UTC)
	}
	if r.LastProcessedDate != nil {
		*r.LastProcessedDate = r.LastProcessedDate.In(time.UTC)
	}
	if r.NextDueDate != nil {
		*r.NextDueDate = r.NextDueDate.In(time.UTC)
	}

	return
}

// BeforeSave
//   - sets the timezone for all dates to UTC
//   - defaults the InstallmentCount to 1
//   - trims whitespace from string fields
//   - validates kind, frequency, amount and the date bounds
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) (err error) {
	r.Description = strings.TrimSpace(r.Description)

	if r.PaymentTypeID != nil && *r.PaymentTypeID == uuid.Nil {
		r.PaymentTypeID = nil
	}

	r.StartDate = r.StartDate.In(time.UTC)
	if r.EndDate != nil {
		*r.EndDate = r.EndDate.In(time.UTC)
	}

	if r.InstallmentCount == 0 {
		r.InstallmentCount = 1
	}

	if r.InstallmentCount < 1 {
		return ErrInstallmentCountTooSmall
	}

	if !r.Kind.Valid() {
		return ErrKindInvalid
	}

	if !r.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if r.Kind == types.KindExpense && r.PaymentTypeID == nil {
		return ErrPaymentTypeRequired
	}

	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return ErrEndDateBeforeStartDate
	}

	return
}

func (r *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	err := tx.First(&Category{}, r.CategoryID).Error
	if err != nil {
		return err
	}

	if r.PaymentTypeID != nil && *r.PaymentTypeID != uuid.Nil {
		return tx.First(&PaymentType{}, *r.PaymentTypeID).Error
	}

	return nil
}

// Returns all recurring transactions on this instance for export
func (RecurringTransaction) Export() (json.RawMessage, error) {
	var recurring []RecurringTransaction
	err := DB.Unscoped().Where(&RecurringTransaction{}).Find(&recurring).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&recurring)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
