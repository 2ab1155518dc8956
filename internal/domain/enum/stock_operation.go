package enum

// StockOperation is the direction of an on-hand quantity adjustment
type StockOperation string

const (
	StockOperationAdd    StockOperation = "add"
	StockOperationRemove StockOperation = "remove"
)

func (o StockOperation) String() string {
	return string(o)
}

// Valid reports whether o is one of the declared operations.
func (o StockOperation) Valid() bool {
	return o == StockOperationAdd || o == StockOperationRemove
}
