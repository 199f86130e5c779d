package recurring

import (
	"errors"
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/schedule"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Options bounds a catch-up run. The caps exist so that a stepper bug
// producing a non-advancing cursor can never turn the scheduled run
// into an endless loop.
type Options struct {
	BatchSize  int // Recurring transactions fetched per due-set query
	PerItemCap int // Occurrences materialized per recurring transaction per run
	MaxBatches int // Due-set queries per run
}

const (
	DefaultBatchSize  = 50
	DefaultPerItemCap = 60
	DefaultMaxBatches = 20
)

func (o Options) withDefaults() Options {
	if o.BatchSize < 1 {
		o.BatchSize = DefaultBatchSize
	}
	if o.PerItemCap < 1 {
		o.PerItemCap = DefaultPerItemCap
	}
	if o.MaxBatches < 1 {
		o.MaxBatches = DefaultMaxBatches
	}
	return o
}

// Summary reports what a catch-up run did.
type Summary struct {
	ProcessedRecurring    int `json:"processedRecurring"`    // Recurring transactions that were due
	GeneratedTransactions int `json:"generatedTransactions"` // Transactions materialized
	BatchesRun            int `json:"batchesRun"`            // Due-set queries issued
}

// RunCatchup materializes every occurrence that has fallen due, e.g.
// after downtime. It queries active recurring transactions whose cursor
// is at or before now in batches and drives CatchUpTemplate for each.
//
// A failure on one recurring transaction is logged and does not abort
// the batch. The run stops early when a batch comes back smaller than
// the batch size, and unconditionally after MaxBatches batches; whatever
// is still due then is picked up by the next scheduled run.
func RunCatchup(db *gorm.DB, now time.Time, opts Options) (Summary, error) {
	opts = opts.withDefaults()
	catchupRuns.Inc()

	var summary Summary
	for batch := 0; batch < opts.MaxBatches; batch++ {
		var due []models.RecurringTransaction
		err := db.
			Where("active = ?", true).
			Where("next_due_date <= ?", now).
			Order("next_due_date ASC").
			Limit(opts.BatchSize).
			Find(&due).Error
		if err != nil {
			return summary, err
		}

		if len(due) == 0 {
			break
		}

		summary.BatchesRun++

		for _, recurring := range due {
			generated, err := CatchUpTemplate(db, recurring.ID, now, opts.PerItemCap)
			summary.GeneratedTransactions += generated
			if err != nil {
				catchupFailures.Inc()
				log.Error().
					Err(err).
					Str("recurring-transaction", recurring.ID.String()).
					Msg("catch-up failed for recurring transaction")
				continue
			}

			summary.ProcessedRecurring++
		}

		if len(due) < opts.BatchSize {
			break
		}
	}

	return summary, nil
}

// CatchUpTemplate materializes occurrences of a single recurring
// transaction until its cursor has caught up with now, it has been
// deactivated, or perItemCap occurrences were materialized. It is the
// single backfill loop, used both by the scheduled run and by the
// synchronous backfill when a recurring transaction is created.
//
// The recurring transaction is re-read after every generation so the
// loop always works with the advanced cursor.
func CatchUpTemplate(db *gorm.DB, id uuid.UUID, now time.Time, perItemCap int) (int, error) {
	generated := 0

	for i := 0; i < perItemCap; i++ {
		var recurring models.RecurringTransaction
		err := db.First(&recurring, id).Error
		if err != nil {
			return generated, err
		}

		if !recurring.Active || recurring.NextDueDate == nil {
			break
		}

		// A cursor before the start date is a data inconsistency,
		// clamp it up before generating
		if recurring.NextDueDate.Before(recurring.StartDate) {
			clamped := schedule.AtNoon(recurring.StartDate)
			recurring.NextDueDate = &clamped
			err = db.Save(&recurring).Error
			if err != nil {
				return generated, err
			}
		}

		if recurring.NextDueDate.After(now) {
			break
		}

		result, err := Generate(db, id, *recurring.NextDueDate)
		if errors.Is(err, ErrExpired) {
			// The schedule ran out during catch-up, Generate has
			// already deactivated the recurring transaction
			break
		}
		if err != nil {
			return generated, err
		}

		if result.Created {
			generated++
		}
	}

	return generated, nil
}
