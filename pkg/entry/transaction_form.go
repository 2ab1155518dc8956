package entry

import (
	"context"
	"time"

	"github.com/kmutua/dukabook-api/pkg/apperror"
)

// FormState is the explicit state of a transaction entry form. Transitions
// only move forward through the declared order; invalid jumps are rejected.
type FormState string

const (
	StateNoType            FormState = "no_type"
	StateTypeSelected      FormState = "type_selected"
	StateEntryModeSelected FormState = "entry_mode_selected"
	StateFilled            FormState = "filled"
	StateSubmitting        FormState = "submitting"
	StateSuccess           FormState = "success"
	StateFailed            FormState = "failed"
)

// EntryMode selects how the amount is captured.
type EntryMode string

const (
	EntryModeManual        EntryMode = "manual"
	EntryModeUploadReceipt EntryMode = "upload-receipt"
)

// TransactionForm drives one transaction entry from type selection to
// submission. The single Amount field is split into payable/receivable at
// submission time according to the selected type; the caller never authors
// both sides.
type TransactionForm struct {
	api  API
	sess Session

	state FormState

	txType        string
	entryMode     EntryMode
	customer      *Customer
	amount        float64
	category      *string
	paymentMethod string
	description   *string
	date          time.Time
	dueDate       *time.Time

	cancel context.CancelFunc
	closed bool
}

// NewTransactionForm opens a fresh form in the NoType state.
func NewTransactionForm(api API, sess Session) *TransactionForm {
	return &TransactionForm{
		api:   api,
		sess:  sess,
		state: StateNoType,
		date:  time.Now(),
	}
}

// State returns the form's current state.
func (f *TransactionForm) State() FormState {
	return f.state
}

// SelectType chooses payable or receivable. Allowed only from NoType or when
// revisiting after a failure.
func (f *TransactionForm) SelectType(txType string) error {
	if txType != "payable" && txType != "receivable" {
		return apperror.NewBadRequestError("Type must be payable or receivable")
	}
	if f.state != StateNoType && f.state != StateFailed {
		return apperror.NewBadRequestError("Type already selected")
	}
	f.txType = txType
	f.state = StateTypeSelected
	return nil
}

// SelectEntryMode chooses manual or upload-receipt entry after a type is
// set. The mode only changes which inputs are shown; validation is the same
// either way.
func (f *TransactionForm) SelectEntryMode(mode EntryMode) error {
	if f.state != StateTypeSelected {
		return apperror.NewBadRequestError("Select a type first")
	}
	if mode != EntryModeManual && mode != EntryModeUploadReceipt {
		return apperror.NewBadRequestError("Unknown entry mode")
	}
	f.entryMode = mode
	f.state = StateEntryModeSelected
	return nil
}

// SetCustomer attaches the resolved customer.
func (f *TransactionForm) SetCustomer(customer Customer) {
	f.customer = &customer
	f.refreshFilled()
}

// SetAmount sets the single amount field.
func (f *TransactionForm) SetAmount(amount float64) {
	f.amount = amount
	f.refreshFilled()
}

// SetPaymentMethod sets how the transaction was settled.
func (f *TransactionForm) SetPaymentMethod(method string) {
	f.paymentMethod = method
	f.refreshFilled()
}

// SetCategory sets the optional category.
func (f *TransactionForm) SetCategory(category *string) {
	f.category = category
}

// SetDescription sets the optional description.
func (f *TransactionForm) SetDescription(description *string) {
	f.description = description
}

// SetDate sets the transaction date.
func (f *TransactionForm) SetDate(date time.Time) {
	f.date = date
	f.refreshFilled()
}

// SetDueDate sets the optional due date for credit transactions.
func (f *TransactionForm) SetDueDate(dueDate *time.Time) {
	f.dueDate = dueDate
}

// refreshFilled moves the form into Filled once the required fields hold
// plausible values. Full validation still runs at submission.
func (f *TransactionForm) refreshFilled() {
	if f.state != StateEntryModeSelected && f.state != StateFilled && f.state != StateFailed {
		return
	}
	if f.customer != nil && f.amount > 0 && f.paymentMethod != "" {
		f.state = StateFilled
	}
}

// Validate checks every submission rule without touching the network.
func (f *TransactionForm) Validate() error {
	var fieldErrors []apperror.FieldError

	if f.txType == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "is required"})
	}
	if f.customer == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer", Message: "is required"})
	}
	if f.amount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if f.paymentMethod == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "is required"})
	}
	if f.date.After(endOfToday()) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "cannot be in the future"})
	}
	if f.paymentMethod == "credit" && f.dueDate == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "due_date", Message: "is required for credit transactions"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

// buildRequest derives the type-specific amount fields from the single
// authored amount. Exactly one side ever carries a value.
func (f *TransactionForm) buildRequest() TransactionRequest {
	req := TransactionRequest{
		CustomerID:    f.customer.ID,
		Type:          f.txType,
		TotalAmount:   f.amount,
		Category:      f.category,
		PaymentMethod: f.paymentMethod,
		Description:   f.description,
		Date:          f.date.Format("2006-01-02"),
	}
	if f.txType == "payable" {
		req.Payable = f.amount
	} else {
		req.Receivable = f.amount
	}
	if f.dueDate != nil {
		d := f.dueDate.Format("2006-01-02")
		req.DueDate = &d
	}
	return req
}

// Submit validates locally and, only when everything passes, sends the
// transaction. A validation failure never reaches the network; a remote
// failure returns the form to Filled with every field intact.
func (f *TransactionForm) Submit(ctx context.Context) error {
	if f.closed {
		return apperror.NewBadRequestError("Form is closed")
	}
	if f.state != StateFilled && f.state != StateFailed {
		return apperror.NewBadRequestError("Form is not ready to submit")
	}

	if _, ok := f.sess.EffectiveShopID(); !ok {
		return apperror.ErrScopeRequired
	}
	if err := f.Validate(); err != nil {
		return err
	}

	f.state = StateSubmitting

	subCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	defer func() { f.cancel = nil }()

	if err := f.api.CreateTransaction(subCtx, f.sess, f.buildRequest()); err != nil {
		if f.closed {
			// Closed mid-flight; the outcome is discarded either way.
			return err
		}
		f.state = StateFailed
		return err
	}

	if f.closed {
		return nil
	}
	f.state = StateSuccess
	return nil
}

// Reset prepares the form for the next entry after a success. With keepScope
// true ("submit and add another") the customer and scope survive and only the
// monetary and descriptive fields clear; otherwise everything clears.
func (f *TransactionForm) Reset(keepScope bool) {
	if keepScope {
		f.amount = 0
		f.description = nil
		f.category = nil
		f.dueDate = nil
		f.state = StateEntryModeSelected
		f.refreshFilled()
		return
	}

	f.txType = ""
	f.entryMode = ""
	f.customer = nil
	f.amount = 0
	f.category = nil
	f.paymentMethod = ""
	f.description = nil
	f.date = time.Now()
	f.dueDate = nil
	f.state = StateNoType
}

// Close abandons the form. An in-flight submission is cancelled and its
// outcome discarded.
func (f *TransactionForm) Close() {
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
}
