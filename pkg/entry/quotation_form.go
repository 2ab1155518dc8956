package entry

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pricing"
	"github.com/shopspring/decimal"
)

// Product is the wire shape of a product as the quotation form sees it.
// DiscountPercentage is the product's default discount, pre-filled on
// selection and editable per line.
type Product struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	CostPrice          float64   `json:"cost_price"`
	RetailPrice        float64   `json:"retail_price"`
	DiscountPercentage float64   `json:"discount_percentage"`
}

// QuotationLine is one line of the form. SalePrice is derived from retail and
// discount; a manual override sticks until a dependent field changes, at
// which point the derivation wins again.
type QuotationLine struct {
	Product            Product
	Quantity           int
	DiscountPercentage float64
	SalePrice          decimal.Decimal
	overridden         bool
}

// QuotationForm drives quotation entry: at least one line, derived pricing,
// and a synchronous running total.
type QuotationForm struct {
	api      API
	sess     Session
	customer *Customer
	lines    []QuotationLine
}

// NewQuotationForm opens an empty quotation form.
func NewQuotationForm(api API, sess Session) *QuotationForm {
	return &QuotationForm{api: api, sess: sess}
}

// SetCustomer attaches the customer the quotation is issued to.
func (f *QuotationForm) SetCustomer(customer Customer) {
	f.customer = &customer
}

// AddLine appends a line for the selected product, pre-filling cost, retail
// and the product's default discount, and deriving the sale price.
func (f *QuotationForm) AddLine(product Product) (int, error) {
	salePrice, err := pricing.SalePrice(
		decimal.NewFromFloat(product.RetailPrice),
		decimal.NewFromFloat(product.DiscountPercentage),
	)
	if err != nil {
		return 0, apperror.NewBadRequestError(err.Error())
	}

	f.lines = append(f.lines, QuotationLine{
		Product:            product,
		Quantity:           1,
		DiscountPercentage: product.DiscountPercentage,
		SalePrice:          salePrice,
	})
	return len(f.lines) - 1, nil
}

// RemoveLine deletes the line at the given index. A quotation always keeps at
// least one line; removing the last one is rejected.
func (f *QuotationForm) RemoveLine(index int) error {
	if index < 0 || index >= len(f.lines) {
		return apperror.NewBadRequestError("No such line")
	}
	if len(f.lines) == 1 {
		return apperror.NewBadRequestError("Quotation requires at least one line")
	}
	f.lines = append(f.lines[:index], f.lines[index+1:]...)
	return nil
}

// SetQuantity updates a line's quantity. The sale price is unaffected; the
// line and document totals move.
func (f *QuotationForm) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(f.lines) {
		return apperror.NewBadRequestError("No such line")
	}
	if quantity < 1 {
		return apperror.NewBadRequestError("Quantity must be at least 1")
	}
	f.lines[index].Quantity = quantity
	return nil
}

// SetDiscount updates a line's discount and rederives its sale price,
// discarding any manual override.
func (f *QuotationForm) SetDiscount(index int, discountPercentage float64) error {
	if index < 0 || index >= len(f.lines) {
		return apperror.NewBadRequestError("No such line")
	}

	line := &f.lines[index]
	salePrice, err := pricing.SalePrice(
		decimal.NewFromFloat(line.Product.RetailPrice),
		decimal.NewFromFloat(discountPercentage),
	)
	if err != nil {
		return apperror.NewBadRequestError(err.Error())
	}

	line.DiscountPercentage = discountPercentage
	line.SalePrice = salePrice
	line.overridden = false
	return nil
}

// OverrideSalePrice pins a manual sale price on a line. It holds until the
// discount (or product) changes, which rederives the price.
func (f *QuotationForm) OverrideSalePrice(index int, salePrice decimal.Decimal) error {
	if index < 0 || index >= len(f.lines) {
		return apperror.NewBadRequestError("No such line")
	}
	if salePrice.IsNegative() {
		return apperror.NewBadRequestError("Sale price cannot be negative")
	}
	f.lines[index].SalePrice = salePrice
	f.lines[index].overridden = true
	return nil
}

// Lines returns the current lines.
func (f *QuotationForm) Lines() []QuotationLine {
	return f.lines
}

// Total recomputes the document total from the current lines. It is
// synchronous and never cached.
func (f *QuotationForm) Total() decimal.Decimal {
	pricingLines := make([]pricing.Line, 0, len(f.lines))
	for _, line := range f.lines {
		pricingLines = append(pricingLines, pricing.Line{
			SalePrice: line.SalePrice,
			Quantity:  line.Quantity,
		})
	}
	return pricing.DocumentTotal(pricingLines)
}

// Submit sends the quotation for server-side validation and persistence and
// returns the rendered document URL. Each line carries its prices as entered,
// so a manual sale-price override survives submission.
func (f *QuotationForm) Submit(ctx context.Context) (*QuotationResult, error) {
	if _, ok := f.sess.EffectiveShopID(); !ok {
		return nil, apperror.ErrScopeRequired
	}
	if f.customer == nil {
		return nil, apperror.NewBadRequestError("Customer is required")
	}
	if len(f.lines) == 0 {
		return nil, apperror.NewBadRequestError("Quotation requires at least one line")
	}

	req := QuotationRequest{
		CustomerID: f.customer.ID,
		Lines:      make([]QuotationLineRequest, 0, len(f.lines)),
	}
	for _, line := range f.lines {
		lineReq := QuotationLineRequest{
			ProductID:          line.Product.ID,
			Quantity:           line.Quantity,
			CostPrice:          line.Product.CostPrice,
			RetailPrice:        line.Product.RetailPrice,
			DiscountPercentage: line.DiscountPercentage,
		}
		if line.overridden {
			salePrice := line.SalePrice.InexactFloat64()
			lineReq.SalePrice = &salePrice
		}
		req.Lines = append(req.Lines, lineReq)
	}

	return f.api.GenerateQuotation(ctx, f.sess, req)
}
