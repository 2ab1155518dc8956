package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quotationFixture(t *testing.T) (*QuotationService, *fakeQuotationRepo, context.Context, *entity.Customer, *entity.Product) {
	t.Helper()

	shopID := uuid.New()
	ctx := scopedCtx(shopID)

	customerRepo := newFakeCustomerRepo()
	customer := &entity.Customer{ShopID: shopID, Name: "Ali", NameKey: "ali"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	product := &entity.Product{
		ShopID:      shopID,
		Name:        "Cement 50kg",
		CostPrice:   80,
		RetailPrice: 100,
	}
	productRepo := newFakeProductRepo(product)

	quotationRepo := newFakeQuotationRepo()
	svc := NewQuotationService(quotationRepo, customerRepo, productRepo, "/documents/quotations")
	return svc, quotationRepo, ctx, customer, product
}

func TestQuotationService_GenerateQuotation_DerivesAllPrices(t *testing.T) {
	svc, repo, ctx, customer, product := quotationFixture(t)

	result, err := svc.GenerateQuotation(ctx, &GenerateQuotationInput{
		CustomerID: customer.ID,
		Lines: []QuotationLineInput{
			{ProductID: product.ID, Quantity: 3, CostPrice: 80, RetailPrice: 100, DiscountPercentage: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, result.Customer.ID)
	assert.True(t, strings.HasPrefix(result.URL, "/documents/quotations/QT-"))

	require.Len(t, repo.quotations, 1)
	for _, q := range repo.quotations {
		require.Len(t, q.Lines, 1)
		line := q.Lines[0]

		// With no override, the sale price comes from the derivation.
		assert.Equal(t, product.Name, line.ProductName)
		assert.Equal(t, 100.0, line.RetailPrice)
		assert.Equal(t, 90.0, line.SalePrice)
		assert.Equal(t, 270.0, line.LineTotal)
		assert.Equal(t, 270.0, q.TotalAmount)
		assert.Equal(t, result.URL, q.DocumentURL)
	}
}

func TestQuotationService_GenerateQuotation_HonorsSalePriceOverride(t *testing.T) {
	svc, repo, ctx, customer, product := quotationFixture(t)

	override := 85.0
	_, err := svc.GenerateQuotation(ctx, &GenerateQuotationInput{
		CustomerID: customer.ID,
		Lines: []QuotationLineInput{
			{ProductID: product.ID, Quantity: 2, CostPrice: 80, RetailPrice: 100, DiscountPercentage: 10, SalePrice: &override},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.quotations, 1)
	for _, q := range repo.quotations {
		require.Len(t, q.Lines, 1)

		// The manual figure replaces the derived 90 on the document.
		assert.Equal(t, 85.0, q.Lines[0].SalePrice)
		assert.Equal(t, 170.0, q.Lines[0].LineTotal)
		assert.Equal(t, 170.0, q.TotalAmount)
	}
}

func TestQuotationService_GenerateQuotation_SingleBadLineFailsAll(t *testing.T) {
	svc, repo, ctx, customer, product := quotationFixture(t)

	negative := -5.0
	cases := []struct {
		name  string
		lines []QuotationLineInput
	}{
		{"unknown product", []QuotationLineInput{
			{ProductID: product.ID, Quantity: 1, RetailPrice: 100},
			{ProductID: uuid.New(), Quantity: 1, RetailPrice: 100},
		}},
		{"zero quantity", []QuotationLineInput{
			{ProductID: product.ID, Quantity: 1, RetailPrice: 100},
			{ProductID: product.ID, Quantity: 0, RetailPrice: 100},
		}},
		{"discount above hundred", []QuotationLineInput{
			{ProductID: product.ID, Quantity: 1, RetailPrice: 100, DiscountPercentage: 150},
		}},
		{"negative retail price", []QuotationLineInput{
			{ProductID: product.ID, Quantity: 1, RetailPrice: -1},
		}},
		{"negative sale price override", []QuotationLineInput{
			{ProductID: product.ID, Quantity: 1, RetailPrice: 100, SalePrice: &negative},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GenerateQuotation(ctx, &GenerateQuotationInput{
				CustomerID: customer.ID,
				Lines:      tc.lines,
			})
			assert.Error(t, err)
		})
	}

	assert.Empty(t, repo.quotations, "failed generations must persist nothing")
}

func TestQuotationService_GenerateQuotation_RequiresLines(t *testing.T) {
	svc, _, ctx, customer, _ := quotationFixture(t)

	_, err := svc.GenerateQuotation(ctx, &GenerateQuotationInput{CustomerID: customer.ID})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestQuotationService_GenerateQuotation_RequiresScope(t *testing.T) {
	svc, _, _, customer, product := quotationFixture(t)

	_, err := svc.GenerateQuotation(context.Background(), &GenerateQuotationInput{
		CustomerID: customer.ID,
		Lines:      []QuotationLineInput{{ProductID: product.ID, Quantity: 1, RetailPrice: 100}},
	})
	assert.ErrorIs(t, err, apperror.ErrScopeRequired)
}

func TestQuotationService_GenerateQuotation_UniqueReferences(t *testing.T) {
	svc, repo, ctx, customer, product := quotationFixture(t)

	input := &GenerateQuotationInput{
		CustomerID: customer.ID,
		Lines:      []QuotationLineInput{{ProductID: product.ID, Quantity: 1, RetailPrice: 100}},
	}

	first, err := svc.GenerateQuotation(ctx, input)
	require.NoError(t, err)
	second, err := svc.GenerateQuotation(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.URL, second.URL)
	assert.Len(t, repo.quotations, 2)
}
