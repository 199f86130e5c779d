package types

// TransactionKind distinguishes money going out from money coming in.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// Valid reports whether the kind is one of the supported values.
func (k TransactionKind) Valid() bool {
	return k == KindExpense || k == KindIncome
}
