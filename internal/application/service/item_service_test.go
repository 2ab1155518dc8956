package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemFixture(t *testing.T, quantity int) (*ItemService, *entity.Item) {
	t.Helper()

	item := &entity.Item{
		ShopID:    uuid.New(),
		ProductID: uuid.New(),
		Quantity:  quantity,
	}
	itemRepo := newFakeItemRepo(item)
	return NewItemService(itemRepo, newFakeProductRepo()), item
}

func TestItemService_AdjustQuantity(t *testing.T) {
	svc, item := itemFixture(t, 10)
	ctx := scopedCtx(item.ShopID)

	got, err := svc.AdjustQuantity(ctx, &AdjustQuantityInput{
		ItemID:    item.ID,
		Operation: enum.StockOperationAdd,
		Amount:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity)

	got, err = svc.AdjustQuantity(ctx, &AdjustQuantityInput{
		ItemID:    item.ID,
		Operation: enum.StockOperationRemove,
		Amount:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
}

func TestItemService_AdjustQuantity_RejectsInvalidInput(t *testing.T) {
	svc, item := itemFixture(t, 10)
	ctx := scopedCtx(item.ShopID)

	cases := []struct {
		name  string
		input AdjustQuantityInput
	}{
		{"zero amount", AdjustQuantityInput{ItemID: item.ID, Operation: enum.StockOperationAdd, Amount: 0}},
		{"negative amount", AdjustQuantityInput{ItemID: item.ID, Operation: enum.StockOperationRemove, Amount: -4}},
		{"unknown operation", AdjustQuantityInput{ItemID: item.ID, Operation: enum.StockOperation("restock"), Amount: 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AdjustQuantity(ctx, &tc.input)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}

	// Rejections leave the stored quantity untouched.
	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

func TestItemService_AdjustQuantity_InsufficientStock(t *testing.T) {
	svc, item := itemFixture(t, 2)
	ctx := scopedCtx(item.ShopID)

	_, err := svc.AdjustQuantity(ctx, &AdjustQuantityInput{
		ItemID:    item.ID,
		Operation: enum.StockOperationRemove,
		Amount:    5,
	})
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)

	// A failed removal must not move the quantity at all.
	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestItemService_AdjustQuantity_UnknownItem(t *testing.T) {
	svc, item := itemFixture(t, 10)

	_, err := svc.AdjustQuantity(scopedCtx(item.ShopID), &AdjustQuantityInput{
		ItemID:    uuid.New(),
		Operation: enum.StockOperationAdd,
		Amount:    1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestItemService_UpdateItem_CannotTouchQuantity(t *testing.T) {
	svc, item := itemFixture(t, 10)
	ctx := scopedCtx(item.ShopID)

	alert := 3
	got, err := svc.UpdateItem(ctx, &UpdateItemInput{ID: item.ID, QuantityAlert: &alert})
	require.NoError(t, err)
	assert.Equal(t, 3, got.QuantityAlert)
	assert.Equal(t, 10, got.Quantity)
}

func TestItemService_ListLowStockItems(t *testing.T) {
	shopID := uuid.New()
	low := &entity.Item{ShopID: shopID, ProductID: uuid.New(), Quantity: 2, QuantityAlert: 5}
	ok := &entity.Item{ShopID: shopID, ProductID: uuid.New(), Quantity: 20, QuantityAlert: 5}
	svc := NewItemService(newFakeItemRepo(low, ok), newFakeProductRepo())

	items, err := svc.ListLowStockItems(scopedCtx(shopID))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)
}
