package models_test

import (
	"github.com/centavo-app/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	name := " Groceries\t"
	note := " Everything from the supermarket "

	category := suite.createTestCategory(models.Category{Name: name, Note: note})

	suite.Assert().Equal("Groceries", category.Name)
	suite.Assert().Equal("Everything from the supermarket", category.Note)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerOwner() {
	owner := uuid.New()
	_ = suite.createTestCategory(models.Category{OwnerID: owner, Name: "Groceries"})

	err := models.DB.Create(&models.Category{OwnerID: owner, Name: "Groceries"}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)

	// The same name is fine for another owner
	err = models.DB.Create(&models.Category{OwnerID: uuid.New(), Name: "Groceries"}).Error
	suite.Assert().NoError(err)
}
