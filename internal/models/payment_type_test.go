package models_test

import (
	"github.com/centavo-app/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestPaymentTypeCreditFieldsIncomplete() {
	err := models.DB.Create(&models.PaymentType{
		Name:       "Credit card",
		IsCredit:   true,
		ClosingDay: 25,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrCreditFieldsIncomplete)
}

func (suite *TestSuiteStandard) TestPaymentTypeCreditDayOutOfRange() {
	err := models.DB.Create(&models.PaymentType{
		Name:       "Credit card",
		IsCredit:   true,
		ClosingDay: 32,
		DueDay:     10,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrCreditDayOutOfRange)
}

func (suite *TestSuiteStandard) TestPaymentTypeCreditTerms() {
	credit := suite.createTestPaymentType(models.PaymentType{
		IsCredit:   true,
		ClosingDay: 25,
		DueDay:     10,
	})

	closingDay, dueDay, ok := credit.CreditTerms()
	suite.Assert().True(ok)
	suite.Assert().Equal(25, closingDay)
	suite.Assert().Equal(10, dueDay)

	cash := suite.createTestPaymentType(models.PaymentType{})
	_, _, ok = cash.CreditTerms()
	suite.Assert().False(ok)
}

func (suite *TestSuiteStandard) TestPaymentTypeNameUniquePerOwner() {
	owner := uuid.New()
	_ = suite.createTestPaymentType(models.PaymentType{OwnerID: owner, Name: "Cash"})

	err := models.DB.Create(&models.PaymentType{OwnerID: owner, Name: "Cash"}).Error
	suite.Assert().ErrorIs(err, models.ErrPaymentTypeNameNotUnique)
}
