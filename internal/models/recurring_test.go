package models_test

import (
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestRecurringTransactionFrequencyInvalid() {
	category := suite.createTestCategory(models.Category{})
	paymentType := suite.createTestPaymentType(models.PaymentType{})

	err := models.DB.Create(&models.RecurringTransaction{
		Amount:        decimal.NewFromFloat(10),
		Kind:          types.KindExpense,
		Frequency:     types.Frequency("fortnightly"),
		CategoryID:    category.ID,
		PaymentTypeID: &paymentType.ID,
		StartDate:     date(2024, 1, 15),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrFrequencyInvalid)
}

func (suite *TestSuiteStandard) TestRecurringTransactionExpenseRequiresPaymentType() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Create(&models.RecurringTransaction{
		Amount:     decimal.NewFromFloat(10),
		Kind:       types.KindExpense,
		Frequency:  types.FrequencyMonthly,
		CategoryID: category.ID,
		StartDate:  date(2024, 1, 15),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrPaymentTypeRequired)
}

func (suite *TestSuiteStandard) TestRecurringTransactionIncomeWithoutPaymentType() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Create(&models.RecurringTransaction{
		Description: "Salary",
		Amount:      decimal.NewFromFloat(3000),
		Kind:        types.KindIncome,
		Frequency:   types.FrequencyMonthly,
		CategoryID:  category.ID,
		StartDate:   date(2024, 1, 15),
	}).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestRecurringTransactionEndBeforeStart() {
	category := suite.createTestCategory(models.Category{})
	paymentType := suite.createTestPaymentType(models.PaymentType{})
	endDate := date(2023, 12, 31)

	err := models.DB.Create(&models.RecurringTransaction{
		Amount:        decimal.NewFromFloat(10),
		Kind:          types.KindExpense,
		Frequency:     types.FrequencyMonthly,
		CategoryID:    category.ID,
		PaymentTypeID: &paymentType.ID,
		StartDate:     date(2024, 1, 15),
		EndDate:       &endDate,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrEndDateBeforeStartDate)
}

func (suite *TestSuiteStandard) TestRecurringTransactionAnchorDay() {
	category := suite.createTestCategory(models.Category{})
	paymentType := suite.createTestPaymentType(models.PaymentType{})

	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{
		Description:   "Rent",
		Amount:        decimal.NewFromFloat(1000),
		Kind:          types.KindExpense,
		Frequency:     types.FrequencyMonthly,
		CategoryID:    category.ID,
		PaymentTypeID: &paymentType.ID,
		StartDate:     date(2024, 1, 31),
	})

	suite.Assert().Equal(31, recurring.AnchorDay())
}
