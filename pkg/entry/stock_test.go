package entry

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockAdjuster_RejectsBeforeIO(t *testing.T) {
	api := &fakeAPI{}
	a := NewStockAdjuster(api, scopedSession(), nil)
	defer a.Close()

	itemID := uuid.New()
	a.Seed(itemID, 10)

	assert.Error(t, a.Adjust(itemID, "add", 0))
	assert.Error(t, a.Adjust(itemID, "add", -3))
	assert.Error(t, a.Adjust(itemID, "restock", 5))

	// Nothing moved locally and nothing reached the network.
	q, _ := a.Quantity(itemID)
	assert.Equal(t, 10, q)
	_, _, _, _, adjusts := api.calls()
	assert.Zero(t, adjusts)
}

func TestStockAdjuster_RequiresConcreteScope(t *testing.T) {
	api := &fakeAPI{}
	a := NewStockAdjuster(api, unresolvedPrivilegedSession(), nil)
	defer a.Close()

	err := a.Adjust(uuid.New(), "add", 5)
	assert.ErrorIs(t, err, apperror.ErrScopeRequired)
}

func TestStockAdjuster_AppliesOptimisticallyThenReconciles(t *testing.T) {
	itemID := uuid.New()
	release := make(chan struct{})
	entered := make(chan struct{})
	api := &fakeAPI{
		adjustFn: func(id uuid.UUID, operation string, amount int) (*Item, error) {
			close(entered)
			<-release
			return &Item{ID: id, Quantity: 16}, nil
		},
	}

	updates := make(chan StockUpdate, 1)
	a := NewStockAdjuster(api, scopedSession(), func(u StockUpdate) { updates <- u })
	defer a.Close()

	a.Seed(itemID, 10)
	require.NoError(t, a.Adjust(itemID, "add", 5))

	// The local view moves as soon as the job is in flight.
	<-entered
	q, _ := a.Quantity(itemID)
	assert.Equal(t, 15, q)

	// When the response lands the server's figure wins.
	close(release)
	update := <-updates
	require.NoError(t, update.Err)
	assert.Equal(t, 16, update.Quantity)
	q, _ = a.Quantity(itemID)
	assert.Equal(t, 16, q)
}

func TestStockAdjuster_RollsBackToExactSnapshot(t *testing.T) {
	itemID := uuid.New()
	api := &fakeAPI{
		adjustFn: func(id uuid.UUID, operation string, amount int) (*Item, error) {
			return nil, errors.New("insufficient stock")
		},
	}

	updates := make(chan StockUpdate, 1)
	a := NewStockAdjuster(api, scopedSession(), func(u StockUpdate) { updates <- u })
	defer a.Close()

	a.Seed(itemID, 7)
	require.NoError(t, a.Adjust(itemID, "remove", 5))

	update := <-updates
	require.Error(t, update.Err)
	assert.Equal(t, 7, update.Quantity)

	q, _ := a.Quantity(itemID)
	assert.Equal(t, 7, q)
}

func TestStockAdjuster_SerializesPerItem(t *testing.T) {
	itemID := uuid.New()
	release := make(chan struct{})
	entered := make(chan int, 2)
	api := &fakeAPI{
		adjustFn: func(id uuid.UUID, operation string, amount int) (*Item, error) {
			entered <- amount
			<-release
			if operation == "add" {
				return &Item{ID: id, Quantity: 15}, nil
			}
			return &Item{ID: id, Quantity: 12}, nil
		},
	}

	updates := make(chan StockUpdate, 2)
	a := NewStockAdjuster(api, scopedSession(), func(u StockUpdate) { updates <- u })
	defer a.Close()

	a.Seed(itemID, 10)
	require.NoError(t, a.Adjust(itemID, "add", 5))
	require.NoError(t, a.Adjust(itemID, "remove", 3))

	// The second job waits its turn while the first is in flight.
	assert.Equal(t, 5, <-entered)
	select {
	case <-entered:
		t.Fatal("second adjustment started before the first settled")
	case <-time.After(50 * time.Millisecond):
	}

	release <- struct{}{}
	assert.Equal(t, 3, <-entered)
	release <- struct{}{}

	<-updates
	final := <-updates
	require.NoError(t, final.Err)
	assert.Equal(t, 12, final.Quantity)

	q, _ := a.Quantity(itemID)
	assert.Equal(t, 12, q)
}

func TestStockAdjuster_DeepBacklogNeverBlocks(t *testing.T) {
	itemID := uuid.New()
	release := make(chan struct{})
	var apiMu sync.Mutex
	served := 0
	api := &fakeAPI{
		adjustFn: func(id uuid.UUID, operation string, amount int) (*Item, error) {
			<-release
			apiMu.Lock()
			served++
			quantity := 10 + served
			apiMu.Unlock()
			return &Item{ID: id, Quantity: quantity}, nil
		},
	}

	a := NewStockAdjuster(api, scopedSession(), nil)
	defer a.Close()
	a.Seed(itemID, 10)

	// Queue far more work than any in-flight request could drain. Every
	// Adjust must return immediately even though the worker is blocked.
	var adjustErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 40; i++ {
			if err := a.Adjust(itemID, "add", 1); err != nil {
				adjustErr = err
				return
			}
		}
	}()

	select {
	case <-done:
		require.NoError(t, adjustErr)
	case <-time.After(2 * time.Second):
		t.Fatal("Adjust blocked behind an in-flight request")
	}

	// The local view stays readable while the backlog drains.
	_, ok := a.Quantity(itemID)
	assert.True(t, ok)

	close(release)
	require.Eventually(t, func() bool {
		q, _ := a.Quantity(itemID)
		return q == 50
	}, 2*time.Second, 5*time.Millisecond)
}

func TestStockAdjuster_ClosedRejectsNewWork(t *testing.T) {
	a := NewStockAdjuster(&fakeAPI{}, scopedSession(), nil)
	a.Close()
	assert.Error(t, a.Adjust(uuid.New(), "add", 1))
}
