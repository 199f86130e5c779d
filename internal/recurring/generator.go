// Package recurring materializes occurrences of recurring transactions
// and projects future cash flow.
package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/schedule"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTargetBeforeStart = errors.New("the target date is before the start date of the recurring transaction")
	ErrExpired           = errors.New("the target date is past the end date of the recurring transaction")
	ErrCategoryMissing   = errors.New("the category of the recurring transaction no longer exists")
)

// Result reports what a Generate call did. Deactivated is set when the
// call itself transitioned the recurring transaction to inactive, so
// callers do not have to infer state changes from the error value.
type Result struct {
	TransactionID uuid.UUID
	Created       bool
	Deactivated   bool
}

// Generate materializes the occurrence of a recurring transaction at
// target: it inserts a transaction snapshot, creates the installment
// plan if there is one, and advances the cursor to the next occurrence.
//
// Generate is idempotent. If the occurrence already exists, its ID is
// returned without side effects, so retries are safe. A target past the
// end date deactivates the recurring transaction, clears its cursor and
// returns ErrExpired with Deactivated set. All writes of a single call
// happen in one database transaction.
func Generate(db *gorm.DB, id uuid.UUID, target time.Time) (Result, error) {
	var recurring models.RecurringTransaction
	err := db.First(&recurring, id).Error
	if err != nil {
		return Result{}, err
	}

	target = schedule.AtNoon(target.In(time.UTC))

	if target.Before(schedule.AtNoon(recurring.StartDate)) {
		return Result{}, fmt.Errorf("%w: target %s, start %s", ErrTargetBeforeStart, target.Format("2006-01-02"), recurring.StartDate.Format("2006-01-02"))
	}

	if recurring.EndDate != nil && target.After(schedule.AtNoon(*recurring.EndDate)) {
		// The schedule has run out: stop the clock so that the
		// catch-up processor does not pick this up again
		recurring.Active = false
		recurring.NextDueDate = nil
		err = db.Save(&recurring).Error
		if err != nil {
			return Result{}, err
		}

		return Result{Deactivated: true}, ErrExpired
	}

	// Idempotency: one materialized transaction per occurrence
	var existing models.Transaction
	err = db.
		Where("recurring_transaction_id = ?", recurring.ID).
		Where("date = ?", target).
		First(&existing).Error
	if err == nil {
		return Result{TransactionID: existing.ID}, nil
	}
	if !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Result{}, err
	}

	var transactionID uuid.UUID
	err = db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		err := tx.First(&category, recurring.CategoryID).Error
		if err != nil {
			return fmt.Errorf("%w: %s", ErrCategoryMissing, recurring.CategoryID)
		}

		recurringID := recurring.ID
		transaction := models.Transaction{
			OwnerID:                recurring.OwnerID,
			Description:            recurring.Description,
			Amount:                 recurring.Amount,
			Kind:                   recurring.Kind,
			Date:                   target,
			CategoryID:             category.ID,
			CategoryName:           category.Name,
			PaymentTypeID:          recurring.PaymentTypeID,
			InstallmentCount:       recurring.InstallmentCount,
			RecurringTransactionID: &recurringID,
		}

		err = tx.Create(&transaction).Error
		if err != nil {
			return err
		}

		if recurring.InstallmentCount > 1 && recurring.PaymentTypeID != nil {
			err = createInstallments(tx, transaction, target)
			if err != nil {
				return err
			}
		}

		// Advance the cursor. The anchor day comes from the start
		// date, never from the occurrence that was just materialized.
		next, err := schedule.Step(target, recurring.Frequency, recurring.AnchorDay())
		if err != nil {
			return err
		}

		recurring.LastProcessedDate = &target
		recurring.NextDueDate = &next
		err = tx.Save(&recurring).Error
		if err != nil {
			return err
		}

		transactionID = transaction.ID
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	generatedTransactions.Inc()
	return Result{TransactionID: transactionID, Created: true}, nil
}

// createInstallments splits the transaction amount and inserts the
// installment plan. Due dates advance by whole calendar months from the
// transaction date.
func createInstallments(tx *gorm.DB, transaction models.Transaction, target time.Time) error {
	amounts, err := schedule.SplitAmount(transaction.Amount, transaction.InstallmentCount)
	if err != nil {
		return err
	}

	installments := make([]models.InstallmentPayment, len(amounts))
	for i, amount := range amounts {
		installments[i] = models.InstallmentPayment{
			OwnerID:       transaction.OwnerID,
			TransactionID: transaction.ID,
			PaymentTypeID: *transaction.PaymentTypeID,
			Amount:        amount,
			DueDate:       schedule.AddMonths(target, i),
			Number:        i + 1,
			Total:         transaction.InstallmentCount,
		}
	}

	return tx.Create(&installments).Error
}
