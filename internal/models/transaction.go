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

// Transaction is a concrete ledger entry, either entered by the user or
// generated from a recurring transaction.
type Transaction struct {
	DefaultModel
	OwnerID     uuid.UUID `gorm:"index"`
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Kind        types.TransactionKind
	Date        time.Time
	CategoryID  uuid.UUID
	Category    Category
	// Snapshot of the category name at creation time. Not kept in sync
	// with later category renames.
	CategoryName     string
	PaymentTypeID    *uuid.UUID
	PaymentType      PaymentType
	InstallmentCount int
	Verified         bool
	// Set for transactions generated from a recurring transaction.
	// Together with Date this is the idempotency key for generation.
	RecurringTransactionID *uuid.UUID `gorm:"index:idx_transactions_recurrence"`
	RecurringTransaction   *RecurringTransaction
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - defaults the InstallmentCount to 1
//   - trims whitespace from string fields
//   - validates kind and amount
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.CategoryName = strings.TrimSpace(t.CategoryName)

	// Ensure that the payment type ID is nil and not a pointer to a
	// nil UUID when it is not set
	if t.PaymentTypeID != nil && *t.PaymentTypeID == uuid.Nil {
		t.PaymentTypeID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.InstallmentCount == 0 {
		t.InstallmentCount = 1
	}

	if t.InstallmentCount < 1 {
		return ErrInstallmentCountTooSmall
	}

	if !t.Kind.Valid() {
		return ErrKindInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	// The category has to exist. Payment types are optional.
	var category Category
	err := tx.First(&category, t.CategoryID).Error
	if err != nil {
		return err
	}

	if t.CategoryName == "" {
		t.CategoryName = category.Name
	}

	if t.PaymentTypeID != nil && *t.PaymentTypeID != uuid.Nil {
		return tx.First(&PaymentType{}, *t.PaymentTypeID).Error
	}

	return nil
}

// AfterDelete soft-deletes the installment payments of the transaction.
func (t *Transaction) AfterDelete(tx *gorm.DB) error {
	return tx.Where(&InstallmentPayment{TransactionID: t.ID}).Delete(&InstallmentPayment{}).Error
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
