package recurring_test

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/recurring"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCatchUpTemplate() {
	template := suite.createTestMonthlyRecurring(date(2024, 1, 15), decimal.NewFromFloat(42))

	generated, err := recurring.CatchUpTemplate(models.DB, template.ID, date(2024, 4, 20), 60)
	suite.Require().NoError(err)
	suite.Assert().Equal(4, generated)

	var transactions []models.Transaction
	suite.Require().NoError(models.DB.
		Where("recurring_transaction_id = ?", template.ID).
		Order("date ASC").
		Find(&transactions).Error)
	suite.Require().Len(transactions, 4)

	for i, transaction := range transactions {
		suite.Assert().True(transaction.Date.Equal(date(2024, time.Month(1+i), 15)), "transaction %d has date %s", i, transaction.Date)
	}

	// The cursor points past now, nothing more is due
	suite.Require().NoError(models.DB.First(&template, template.ID).Error)
	suite.Require().NotNil(template.NextDueDate)
	suite.Assert().True(template.NextDueDate.Equal(date(2024, 5, 15)))
}

func (suite *TestSuiteStandard) TestCatchUpTemplateCap() {
	template := suite.createTestMonthlyRecurring(date(2020, 1, 15), decimal.NewFromFloat(42))

	generated, err := recurring.CatchUpTemplate(models.DB, template.ID, date(2024, 1, 15), 3)
	suite.Require().NoError(err)
	suite.Assert().Equal(3, generated)

	// The next run picks up where this one stopped
	suite.Require().NoError(models.DB.First(&template, template.ID).Error)
	suite.Require().NotNil(template.NextDueDate)
	suite.Assert().True(template.NextDueDate.Equal(date(2020, 4, 15)), "cursor is %s", template.NextDueDate)
}

func (suite *TestSuiteStandard) TestCatchUpTemplateExpires() {
	template := suite.createTestMonthlyRecurring(date(2024, 1, 15), decimal.NewFromFloat(42))
	endDate := date(2024, 2, 28)
	template.EndDate = &endDate
	suite.Require().NoError(models.DB.Save(&template).Error)

	generated, err := recurring.CatchUpTemplate(models.DB, template.ID, date(2024, 6, 1), 60)
	suite.Require().NoError(err)
	suite.Assert().Equal(2, generated)

	// Read into a fresh struct, a NULL column does not clear a non-nil
	// pointer field on the reused one
	var expired models.RecurringTransaction
	suite.Require().NoError(models.DB.First(&expired, template.ID).Error)
	suite.Assert().False(expired.Active)
	suite.Assert().Nil(expired.NextDueDate)
}

func (suite *TestSuiteStandard) TestCatchUpTemplateNotDue() {
	template := suite.createTestMonthlyRecurring(date(2024, 6, 15), decimal.NewFromFloat(42))

	generated, err := recurring.CatchUpTemplate(models.DB, template.ID, date(2024, 6, 1), 60)
	suite.Require().NoError(err)
	suite.Assert().Equal(0, generated)
}

func (suite *TestSuiteStandard) TestRunCatchup() {
	due := suite.createTestMonthlyRecurring(date(2024, 1, 15), decimal.NewFromFloat(42))
	alsoDue := suite.createTestMonthlyRecurring(date(2024, 3, 1), decimal.NewFromFloat(10))
	notDue := suite.createTestMonthlyRecurring(date(2024, 8, 1), decimal.NewFromFloat(10))

	summary, err := recurring.RunCatchup(models.DB, date(2024, 3, 20), recurring.Options{})
	suite.Require().NoError(err)
	suite.Assert().Equal(2, summary.ProcessedRecurring)
	suite.Assert().Equal(4, summary.GeneratedTransactions)
	suite.Assert().Equal(1, summary.BatchesRun)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("recurring_transaction_id = ?", due.ID).Count(&count).Error)
	suite.Assert().Equal(int64(3), count)

	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("recurring_transaction_id = ?", alsoDue.ID).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)

	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("recurring_transaction_id = ?", notDue.ID).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestRunCatchupIsolatesFailures() {
	broken := suite.createTestMonthlyRecurring(date(2024, 1, 15), decimal.NewFromFloat(42))
	suite.Require().NoError(models.DB.Delete(&models.Category{}, broken.CategoryID).Error)

	healthy := suite.createTestMonthlyRecurring(date(2024, 2, 15), decimal.NewFromFloat(10))

	summary, err := recurring.RunCatchup(models.DB, date(2024, 2, 20), recurring.Options{})
	suite.Require().NoError(err)
	suite.Assert().Equal(1, summary.ProcessedRecurring)
	suite.Assert().Equal(1, summary.GeneratedTransactions)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("recurring_transaction_id = ?", healthy.ID).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}
