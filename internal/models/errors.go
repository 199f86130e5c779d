package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors
var (
	ErrAmountNotPositive         = errors.New("amounts must be larger than zero")
	ErrKindInvalid               = errors.New("the transaction kind must be expense or income")
	ErrFrequencyInvalid          = errors.New("the frequency must be one of: daily, weekly, monthly, semestrally, yearly")
	ErrInstallmentCountTooSmall  = errors.New("the number of installments must be at least 1")
	ErrEndDateBeforeStartDate    = errors.New("the end date must not be before the start date")
	ErrPaymentTypeRequired       = errors.New("expense recurring transactions must have a payment type")
	ErrCreditDayOutOfRange       = errors.New("closing day and due day must be between 1 and 31")
	ErrCreditFieldsIncomplete    = errors.New("credit payment types must have both a closing day and a due day")
	ErrCategoryNameNotUnique     = errors.New("the category name is already in use")
	ErrPaymentTypeNameNotUnique  = errors.New("the payment type name is already in use")
	ErrRuleMatchEmpty            = errors.New("the category rule match pattern must not be empty")
	ErrInstallmentNumberTooSmall = errors.New("installment numbers start at 1")
)
