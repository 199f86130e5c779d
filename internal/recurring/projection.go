package recurring

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/schedule"
	"github.com/centavo-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// DefaultHorizonMonths is how far past the current month the projection
// looks ahead.
const DefaultHorizonMonths = 4

// Synthesized occurrences per recurring transaction. Way above anything
// a real window produces (a 5 month daily schedule is ~155 occurrences),
// purely a guard against stepping bugs.
const maxSyntheticOccurrences = 1000

// ItemSource says which series a projection item came from.
type ItemSource string

const (
	SourceInstallment ItemSource = "installment"
	SourceRecurring   ItemSource = "recurring"
)

// Item is one projected future payment.
type Item struct {
	Date          time.Time             `json:"date"`
	Amount        decimal.Decimal       `json:"amount"`
	Description   string                `json:"description"`
	Kind          types.TransactionKind `json:"kind"`
	CategoryID    uuid.UUID             `json:"categoryId"`
	CategoryName  string                `json:"categoryName"`
	PaymentTypeID *uuid.UUID            `json:"paymentTypeId"`
	Source        ItemSource            `json:"source"`

	// Set for installment items
	TransactionID     *uuid.UUID `json:"transactionId,omitempty"`
	InstallmentNumber int        `json:"installmentNumber,omitempty"`
	InstallmentTotal  int        `json:"installmentTotal,omitempty"`

	// Set for recurring items
	RecurringTransactionID *uuid.UUID `json:"recurringTransactionId,omitempty"`
}

// Used when the transaction an installment belongs to no longer exists.
const orphanedInstallmentDescription = "(deleted transaction)"

// Project returns the projected payments between the first instant of
// the current month and the last instant of the month horizonMonths
// later, sorted by date. It merges two series: installment payments
// that already exist in the database, and occurrences of active
// recurring transactions synthesized with the same stepper the
// generator uses. Project never writes.
//
// Recurring occurrences are synthesized starting at the cursor, so an
// occurrence that has already been materialized never shows up twice.
// Installments of a materialized occurrence do appear, as installment
// items.
func Project(db *gorm.DB, ownerID uuid.UUID, now time.Time, horizonMonths int) ([]Item, error) {
	if horizonMonths < 1 {
		horizonMonths = DefaultHorizonMonths
	}

	month := types.MonthOf(now.In(time.UTC))
	windowStart := month.Start()
	windowEnd := month.AddDate(0, horizonMonths).End()

	items, err := installmentItems(db, ownerID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	synthesized, err := recurringItems(db, ownerID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	items = append(items, synthesized...)

	slices.SortStableFunc(items, func(a, b Item) int {
		return a.Date.Compare(b.Date)
	})

	return items, nil
}

// installmentItems collects the installment payments due in the window.
func installmentItems(db *gorm.DB, ownerID uuid.UUID, windowStart, windowEnd time.Time) ([]Item, error) {
	var installments []models.InstallmentPayment
	query := db.
		Preload("Transaction").
		Where("due_date >= ?", windowStart).
		Where("due_date <= ?", windowEnd).
		Order("due_date ASC")
	if ownerID != uuid.Nil {
		query = query.Where("owner_id = ?", ownerID)
	}

	err := query.Find(&installments).Error
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(installments))
	for _, installment := range installments {
		paymentTypeID := installment.PaymentTypeID
		transactionID := installment.TransactionID

		item := Item{
			Date:              installment.DueDate,
			Amount:            installment.Amount,
			Description:       orphanedInstallmentDescription,
			PaymentTypeID:     &paymentTypeID,
			Source:            SourceInstallment,
			TransactionID:     &transactionID,
			InstallmentNumber: installment.Number,
			InstallmentTotal:  installment.Total,
		}

		if installment.Transaction.ID != uuid.Nil {
			item.Description = installment.Transaction.Description
			item.Kind = installment.Transaction.Kind
			item.CategoryID = installment.Transaction.CategoryID
			item.CategoryName = installment.Transaction.CategoryName
		}

		items = append(items, item)
	}

	return items, nil
}

// recurringItems synthesizes the occurrences of active recurring
// transactions that fall into the window, stepping from each cursor
// with the generator's stepper.
func recurringItems(db *gorm.DB, ownerID uuid.UUID, windowStart, windowEnd time.Time) ([]Item, error) {
	var active []models.RecurringTransaction
	query := db.
		Preload("Category").
		Where("active = ?", true).
		Where("start_date <= ?", windowEnd)
	if ownerID != uuid.Nil {
		query = query.Where("owner_id = ?", ownerID)
	}

	err := query.Find(&active).Error
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, recurring := range active {
		occurrences, err := synthesizeOccurrences(recurring, windowStart, windowEnd)
		if err != nil {
			return nil, err
		}

		recurringID := recurring.ID
		for _, date := range occurrences {
			items = append(items, Item{
				Date:                   date,
				Amount:                 recurring.Amount,
				Description:            recurring.Description,
				Kind:                   recurring.Kind,
				CategoryID:             recurring.CategoryID,
				CategoryName:           recurring.Category.Name,
				PaymentTypeID:          recurring.PaymentTypeID,
				Source:                 SourceRecurring,
				RecurringTransactionID: &recurringID,
			})
		}
	}

	return items, nil
}

// synthesizeOccurrences steps from the cursor through the window and
// returns the occurrence dates inside it. Dates before the window start
// are stepped over but not returned, so the anchor sequence stays
// identical to what the generator will materialize.
func synthesizeOccurrences(recurring models.RecurringTransaction, windowStart, windowEnd time.Time) ([]time.Time, error) {
	if recurring.NextDueDate == nil {
		return nil, nil
	}

	limit := windowEnd
	if recurring.EndDate != nil {
		if end := schedule.AtNoon(*recurring.EndDate); end.Before(limit) {
			limit = end
		}
	}

	var dates []time.Time
	candidate := schedule.AtNoon(*recurring.NextDueDate)

	for i := 0; i < maxSyntheticOccurrences && !candidate.After(limit); i++ {
		if !candidate.Before(windowStart) {
			dates = append(dates, candidate)
		}

		next, err := schedule.Step(candidate, recurring.Frequency, recurring.AnchorDay())
		if err != nil {
			return nil, err
		}
		candidate = next
	}

	return dates, nil
}
