package enum

import "database/sql/driver"

// TransactionType declares which side of the ledger a transaction sits on.
// Exactly one of the transaction's amount fields is populated according to
// this type.
type TransactionType string

const (
	TransactionTypePayable    TransactionType = "payable"
	TransactionTypeReceivable TransactionType = "receivable"
)

func (t TransactionType) String() string {
	return string(t)
}

// Valid reports whether t is one of the declared types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypePayable || t == TransactionTypeReceivable
}

func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(string(v))
	}
	return nil
}
