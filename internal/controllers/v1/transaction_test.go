package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/centavo-app/backend/internal/controllers/v1"
	"github.com/centavo-app/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransactionsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		id     string // path at the Transactions endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Transaction with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Transaction exists", createTestTransaction(suite.T(), v1.TransactionEditable{
			Amount:     decimal.NewFromFloat(17.23),
			CategoryID: category.Data.ID,
		}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/transactions", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestTransactionsCreateCategoryName verifies that the category name is
// snapshotted on the transaction at creation time.
func (suite *TestSuiteStandard) TestTransactionsCreateCategoryName() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Description: "Corner store",
		Amount:      decimal.NewFromFloat(32.10),
		CategoryID:  category.Data.ID,
	})

	assert.Equal(suite.T(), "Groceries", transaction.Data.CategoryName)
}

// TestTransactionsCreateRuleMatch verifies that a transaction without a
// category is assigned one by the matching category rule.
func (suite *TestSuiteStandard) TestTransactionsCreateRuleMatch() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Streaming"})
	_ = createTestCategoryRule(suite.T(), v1.CategoryRuleEditable{
		Priority:   1,
		Match:      "Netflix*",
		CategoryID: category.Data.ID,
	})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Description: "Netflix Subscription",
		Amount:      decimal.NewFromFloat(9.99),
	})

	assert.Equal(suite.T(), category.Data.ID, transaction.Data.CategoryID)
	assert.Equal(suite.T(), "Streaming", transaction.Data.CategoryName)
}

// TestTransactionsCreateNoRuleMatch verifies that creation fails when no
// category is given and no rule matches.
func (suite *TestSuiteStandard) TestTransactionsCreateNoRuleMatch() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{{
		Description: "Mystery payment",
		Amount:      decimal.NewFromFloat(5),
		Date:        time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC),
	}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Contains(suite.T(), *response.Data[0].Error, "no category rule matches")
}

// TestTransactionsCreateInstallments verifies that a transaction paid on a
// credit payment type in multiple installments gets an installment plan
// whose amounts sum to the transaction amount.
func (suite *TestSuiteStandard) TestTransactionsCreateInstallments() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	paymentType := createTestPaymentType(suite.T(), v1.PaymentTypeEditable{
		IsCredit:   true,
		ClosingDay: 25,
		DueDay:     10,
	})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Description:      "New fridge",
		Amount:           decimal.NewFromFloat(100),
		CategoryID:       category.Data.ID,
		PaymentTypeID:    &paymentType.Data.ID,
		InstallmentCount: 3,
		Date:             time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC),
	})

	var installments v1.InstallmentListResponse
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/installments?transaction=%s", transaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &installments)

	require.Len(suite.T(), installments.Data, 3)

	sum := decimal.Zero
	for _, installment := range installments.Data {
		sum = sum.Add(installment.Amount)
		assert.Equal(suite.T(), 3, installment.Total)
	}
	assert.True(suite.T(), sum.Equal(decimal.NewFromFloat(100)), "Installments sum to %s, not the transaction amount", sum)

	// Purchase on 2024-02-15 with a cycle closing on the 25th is due
	// after the statement closes
	first := installments.Data[0]
	assert.Equal(suite.T(), 1, first.Number)
	assert.True(suite.T(), first.DueDate.After(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)))
}

// TestTransactionsGetFilter verifies date range and resource filters.
func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Description: "Rent January",
		Amount:      decimal.NewFromFloat(1250),
		CategoryID:  category.Data.ID,
		Date:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Description: "Rent February",
		Amount:      decimal.NewFromFloat(1250),
		CategoryID:  category.Data.ID,
		Date:        time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Category", fmt.Sprintf("category=%s", category.Data.ID), 2},
		{"Description", "description=January", 1},
		{"From date", "fromDate=2024-01-15T00:00:00Z", 1},
		{"Until date", "untilDate=2024-01-15T00:00:00Z", 1},
		{"Range without match", "fromDate=2024-03-01T00:00:00Z", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.TransactionListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data), "Wrong number of Transactions for query %q", tt.query)
		})
	}
}

// TestTransactionsDeleteCascades verifies that deleting a transaction also
// deletes its installment plan.
func (suite *TestSuiteStandard) TestTransactionsDeleteCascades() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	paymentType := createTestPaymentType(suite.T(), v1.PaymentTypeEditable{
		IsCredit:   true,
		ClosingDay: 25,
		DueDay:     10,
	})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:           decimal.NewFromFloat(60),
		CategoryID:       category.Data.ID,
		PaymentTypeID:    &paymentType.Data.ID,
		InstallmentCount: 2,
	})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var installments v1.InstallmentListResponse
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/installments?transaction=%s", transaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &installments)
	assert.Len(suite.T(), installments.Data, 0)
}
