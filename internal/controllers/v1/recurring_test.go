package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/centavo-app/backend/internal/controllers/v1"
	"github.com/centavo-app/backend/internal/types"
	"github.com/centavo-app/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecurringTransactionsCreateBackfill verifies that creating a
// recurring transaction with a start date in the past materializes all
// occurrences up to today.
func (suite *TestSuiteStandard) TestRecurringTransactionsCreateBackfill() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Housing"})

	// 75 days span exactly three monthly occurrences
	start := time.Now().In(time.UTC).AddDate(0, 0, -75)

	recurringTransaction := createTestRecurringTransaction(suite.T(), v1.RecurringTransactionEditable{
		Description: "Rent",
		Amount:      decimal.NewFromFloat(1250),
		Kind:        types.KindIncome,
		Frequency:   types.FrequencyMonthly,
		CategoryID:  category.Data.ID,
		StartDate:   start,
	})

	require.NotNil(suite.T(), recurringTransaction.Data.NextDueDate)
	assert.True(suite.T(), recurringTransaction.Data.NextDueDate.After(time.Now()), "Cursor must point at a future occurrence after backfill")

	var transactions v1.TransactionListResponse
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?recurring=%s", recurringTransaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &transactions)

	assert.Len(suite.T(), transactions.Data, 3)
	for _, transaction := range transactions.Data {
		assert.Equal(suite.T(), "Rent", transaction.Description)
		require.NotNil(suite.T(), transaction.RecurringTransactionID)
		assert.Equal(suite.T(), recurringTransaction.Data.ID, *transaction.RecurringTransactionID)
	}
}

// TestRecurringTransactionsCreateNoBackfill verifies that backfill can be
// turned off so that only future occurrences are scheduled.
func (suite *TestSuiteStandard) TestRecurringTransactionsCreateNoBackfill() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	backfill := false

	recurringTransaction := createTestRecurringTransaction(suite.T(), v1.RecurringTransactionEditable{
		Description: "Rent",
		Amount:      decimal.NewFromFloat(1250),
		Kind:        types.KindIncome,
		Frequency:   types.FrequencyMonthly,
		CategoryID:  category.Data.ID,
		StartDate:   time.Now().In(time.UTC).AddDate(0, 0, -75),
		Backfill:    &backfill,
	})

	require.NotNil(suite.T(), recurringTransaction.Data.NextDueDate)
	assert.True(suite.T(), recurringTransaction.Data.NextDueDate.After(time.Now()))

	var transactions v1.TransactionListResponse
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?recurring=%s", recurringTransaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &transactions)

	assert.Len(suite.T(), transactions.Data, 0)
}

// TestRecurringTransactionsCreateBackfillExpires verifies that a schedule
// whose end date has already passed expires during the backfill on
// creation and that the response reflects the cleared cursor.
func (suite *TestSuiteStandard) TestRecurringTransactionsCreateBackfillExpires() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	endDate := time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)

	recurringTransaction := createTestRecurringTransaction(suite.T(), v1.RecurringTransactionEditable{
		Description: "Bridge loan",
		Amount:      decimal.NewFromFloat(300),
		Kind:        types.KindIncome,
		Frequency:   types.FrequencyMonthly,
		CategoryID:  category.Data.ID,
		StartDate:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		EndDate:     &endDate,
	})

	assert.False(suite.T(), recurringTransaction.Data.Active)
	assert.Nil(suite.T(), recurringTransaction.Data.NextDueDate)
	require.NotNil(suite.T(), recurringTransaction.Data.LastProcessedDate)

	var transactions v1.TransactionListResponse
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?recurring=%s", recurringTransaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &transactions)
	assert.Len(suite.T(), transactions.Data, 2)
}

// TestRecurringTransactionsCreateExpenseWithoutPaymentType verifies the
// validation that expenses need a payment type.
func (suite *TestSuiteStandard) TestRecurringTransactionsCreateExpenseWithoutPaymentType() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/recurring-transactions", []v1.RecurringTransactionEditable{{
		Description: "Gym",
		Amount:      decimal.NewFromFloat(29.90),
		Kind:        types.KindExpense,
		Frequency:   types.FrequencyMonthly,
		CategoryID:  category.Data.ID,
		StartDate:   time.Now().In(time.UTC),
	}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestRecurringTransactionsUpdateReactivate verifies that reactivating an
// expired schedule reinitializes the cursor.
func (suite *TestSuiteStandard) TestRecurringTransactionsUpdateReactivate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	backfill := false

	recurringTransaction := createTestRecurringTransaction(suite.T(), v1.RecurringTransactionEditable{
		Description: "Allowance",
		Amount:      decimal.NewFromFloat(50),
		Kind:        types.KindIncome,
		Frequency:   types.FrequencyMonthly,
		CategoryID:  category.Data.ID,
		StartDate:   time.Now().In(time.UTC),
		Backfill:    &backfill,
	})

	r := test.Request(suite.T(), http.MethodPatch, recurringTransaction.Data.Links.Self, map[string]any{
		"active": false,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.RecurringTransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.False(suite.T(), updated.Data.Active)

	r = test.Request(suite.T(), http.MethodPatch, recurringTransaction.Data.Links.Self, map[string]any{
		"active": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Active)
	require.NotNil(suite.T(), updated.Data.NextDueDate)
}

// TestRecurringTransactionsGetFilter verifies the list filters.
func (suite *TestSuiteStandard) TestRecurringTransactionsGetFilter() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	backfill := false

	_ = createTestRecurringTransaction(suite.T(), v1.RecurringTransactionEditable{
		Description: "Salary",
		Amount:      decimal.NewFromFloat(4200),
		Kind:        types.KindIncome,
		Frequency:   types.FrequencyMonthly,
		CategoryID:  category.Data.ID,
		StartDate:   time.Now().In(time.UTC),
		Backfill:    &backfill,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Kind", "kind=income", 1},
		{"Kind without match", "kind=expense", 0},
		{"Frequency", "frequency=monthly", 1},
		{"Description", "description=Sal", 1},
		{"Category", fmt.Sprintf("category=%s", category.Data.ID), 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.RecurringTransactionListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/recurring-transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data), "Wrong number of Recurring Transactions for query %q", tt.query)
		})
	}
}
