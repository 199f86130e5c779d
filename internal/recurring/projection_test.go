package recurring_test

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/recurring"
	"github.com/centavo-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func itemsBySource(items []recurring.Item, source recurring.ItemSource) []recurring.Item {
	var filtered []recurring.Item
	for _, item := range items {
		if item.Source == source {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (suite *TestSuiteStandard) TestProjectRecurringSeries() {
	template := suite.createTestMonthlyRecurring(date(2024, 5, 15), decimal.NewFromFloat(42))

	items, err := recurring.Project(models.DB, uuid.Nil, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)
	suite.Require().Len(items, 5)

	for i, item := range items {
		suite.Assert().True(item.Date.Equal(date(2024, time.Month(5+i), 15)), "item %d has date %s", i, item.Date)
		suite.Assert().Equal(recurring.SourceRecurring, item.Source)
		suite.Assert().Equal("Rent", item.Description)
		suite.Assert().True(item.Amount.Equal(decimal.NewFromFloat(42)))
		suite.Assert().NotEmpty(item.CategoryName)
		suite.Require().NotNil(item.RecurringTransactionID)
		suite.Assert().Equal(template.ID, *item.RecurringTransactionID)
	}
}

func (suite *TestSuiteStandard) TestProjectMatchesGeneration() {
	template := suite.createTestMonthlyRecurring(date(2024, 5, 15), decimal.NewFromFloat(42))

	projected, err := recurring.Project(models.DB, uuid.Nil, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)
	suite.Require().Len(projected, 5)

	// Materialize the first two occurrences, then project again
	generated, err := recurring.CatchUpTemplate(models.DB, template.ID, date(2024, 6, 20), 60)
	suite.Require().NoError(err)
	suite.Require().Equal(2, generated)

	var transactions []models.Transaction
	suite.Require().NoError(models.DB.
		Where("recurring_transaction_id = ?", template.ID).
		Order("date ASC").
		Find(&transactions).Error)
	suite.Require().Len(transactions, 2)

	// The materialized dates are exactly the first projected dates
	for i, transaction := range transactions {
		suite.Assert().True(transaction.Date.Equal(projected[i].Date), "transaction %d has date %s, projected %s", i, transaction.Date, projected[i].Date)
	}

	// Materialized occurrences drop out of the projection, the rest stays
	remaining, err := recurring.Project(models.DB, uuid.Nil, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)
	suite.Require().Len(remaining, 3)
	suite.Assert().True(remaining[0].Date.Equal(date(2024, 7, 15)))
}

func (suite *TestSuiteStandard) TestProjectInstallments() {
	template := suite.createTestMonthlyRecurring(date(2024, 5, 10), decimal.NewFromFloat(100))
	template.InstallmentCount = 3
	suite.Require().NoError(models.DB.Save(&template).Error)

	result, err := recurring.Generate(models.DB, template.ID, date(2024, 5, 10))
	suite.Require().NoError(err)

	items, err := recurring.Project(models.DB, uuid.Nil, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)

	installments := itemsBySource(items, recurring.SourceInstallment)
	suite.Require().Len(installments, 3)
	for i, item := range installments {
		suite.Assert().True(item.Date.Equal(date(2024, time.Month(5+i), 10)), "installment %d has date %s", i, item.Date)
		suite.Assert().Equal(i+1, item.InstallmentNumber)
		suite.Assert().Equal(3, item.InstallmentTotal)
		suite.Assert().Equal("Rent", item.Description)
		suite.Assert().Equal(types.KindExpense, item.Kind)
		suite.Require().NotNil(item.TransactionID)
		suite.Assert().Equal(result.TransactionID, *item.TransactionID)
	}

	// The not yet materialized occurrences are still projected
	synthesized := itemsBySource(items, recurring.SourceRecurring)
	suite.Require().Len(synthesized, 4)
	suite.Assert().True(synthesized[0].Date.Equal(date(2024, 6, 10)))

	// The merged list is sorted by date
	for i := 1; i < len(items); i++ {
		suite.Assert().False(items[i].Date.Before(items[i-1].Date))
	}
}

func (suite *TestSuiteStandard) TestProjectOrphanedInstallment() {
	paymentType := suite.createTestPaymentType(models.PaymentType{})

	installment := models.InstallmentPayment{
		TransactionID: uuid.New(),
		PaymentTypeID: paymentType.ID,
		Amount:        decimal.NewFromFloat(12.5),
		DueDate:       date(2024, 5, 20),
		Number:        1,
		Total:         1,
	}
	suite.Require().NoError(models.DB.Create(&installment).Error)

	items, err := recurring.Project(models.DB, uuid.Nil, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Assert().Equal("(deleted transaction)", items[0].Description)
}

func (suite *TestSuiteStandard) TestProjectHonorsEndDate() {
	template := suite.createTestMonthlyRecurring(date(2024, 5, 15), decimal.NewFromFloat(42))
	endDate := date(2024, 6, 30)
	template.EndDate = &endDate
	suite.Require().NoError(models.DB.Save(&template).Error)

	items, err := recurring.Project(models.DB, uuid.Nil, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Assert().True(items[0].Date.Equal(date(2024, 5, 15)))
	suite.Assert().True(items[1].Date.Equal(date(2024, 6, 15)))
}

func (suite *TestSuiteStandard) TestProjectExcludesInactive() {
	template := suite.createTestMonthlyRecurring(date(2024, 5, 15), decimal.NewFromFloat(42))
	template.Active = false
	suite.Require().NoError(models.DB.Save(&template).Error)

	items, err := recurring.Project(models.DB, uuid.Nil, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)
	suite.Assert().Empty(items)
}

func (suite *TestSuiteStandard) TestProjectScopesToOwner() {
	owner := uuid.New()

	category := suite.createTestCategory(models.Category{OwnerID: owner})
	paymentType := suite.createTestPaymentType(models.PaymentType{OwnerID: owner})
	startDate := date(2024, 5, 15)
	suite.createTestRecurringTransaction(models.RecurringTransaction{
		OwnerID:       owner,
		Description:   "Gym",
		Amount:        decimal.NewFromFloat(30),
		Kind:          types.KindExpense,
		Frequency:     types.FrequencyMonthly,
		CategoryID:    category.ID,
		PaymentTypeID: &paymentType.ID,
		StartDate:     startDate,
		NextDueDate:   &startDate,
		Active:        true,
	})

	suite.createTestMonthlyRecurring(date(2024, 5, 15), decimal.NewFromFloat(42))

	items, err := recurring.Project(models.DB, owner, date(2024, 5, 1), recurring.DefaultHorizonMonths)
	suite.Require().NoError(err)
	suite.Require().Len(items, 5)
	for _, item := range items {
		suite.Assert().Equal("Gym", item.Description)
	}
}
