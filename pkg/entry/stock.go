package entry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/pkg/apperror"
)

// StockUpdate reports the outcome of one stock adjustment.
type StockUpdate struct {
	ItemID   uuid.UUID
	Quantity int
	Err      error
}

type stockJob struct {
	operation string
	amount    int
}

// itemQueue is an unbounded FIFO backlog for one item. Jobs are appended
// under the adjuster's mutex and drained by the item's worker; wake carries
// at most one pending signal so enqueueing never blocks.
type itemQueue struct {
	jobs []stockJob
	wake chan struct{}
}

// StockAdjuster applies bounded stock adjustments optimistically. The local
// quantity moves as soon as a job is picked up; on failure it rolls back to
// the exact value snapshotted before the move. Jobs for one item run strictly
// in order, one in flight at a time, so a rollback can never clobber a later
// adjustment's effect. Jobs keep running after the caller moves on; the local
// view reconciles whenever a response lands.
type StockAdjuster struct {
	api  API
	sess Session

	mu         sync.Mutex
	quantities map[uuid.UUID]int
	queues     map[uuid.UUID]*itemQueue
	onUpdate   func(StockUpdate)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// NewStockAdjuster creates an adjuster. onUpdate, when set, is called from a
// worker goroutine after every settled adjustment.
func NewStockAdjuster(api API, sess Session, onUpdate func(StockUpdate)) *StockAdjuster {
	ctx, cancel := context.WithCancel(context.Background())
	return &StockAdjuster{
		api:        api,
		sess:       sess,
		quantities: make(map[uuid.UUID]int),
		queues:     make(map[uuid.UUID]*itemQueue),
		onUpdate:   onUpdate,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Seed records the known quantity of an item, typically from a listing.
func (a *StockAdjuster) Seed(itemID uuid.UUID, quantity int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.quantities[itemID] = quantity
}

// Quantity returns the current local view of an item's stock level.
func (a *StockAdjuster) Quantity(itemID uuid.UUID) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	q, ok := a.quantities[itemID]
	return q, ok
}

// Adjust queues a stock adjustment. Invalid input and a missing shop scope
// are rejected here, before any I/O or local mutation.
func (a *StockAdjuster) Adjust(itemID uuid.UUID, operation string, amount int) error {
	if operation != "add" && operation != "remove" {
		return apperror.NewBadRequestError("Operation must be add or remove")
	}
	if amount <= 0 {
		return apperror.NewBadRequestError("Amount must be greater than zero")
	}
	if _, ok := a.sess.EffectiveShopID(); !ok {
		return apperror.ErrScopeRequired
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return apperror.NewBadRequestError("Adjuster is closed")
	}

	queue, ok := a.queues[itemID]
	if !ok {
		queue = &itemQueue{wake: make(chan struct{}, 1)}
		a.queues[itemID] = queue
		a.wg.Add(1)
		go a.worker(itemID, queue)
	}
	queue.jobs = append(queue.jobs, stockJob{operation: operation, amount: amount})
	a.mu.Unlock()

	select {
	case queue.wake <- struct{}{}:
	default:
	}
	return nil
}

// worker drains one item's backlog in FIFO order, one job in flight at a
// time. It never touches a.mu while blocked on the remote call, so callers
// can keep queueing however deep the backlog grows.
func (a *StockAdjuster) worker(itemID uuid.UUID, queue *itemQueue) {
	defer a.wg.Done()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-queue.wake:
		}

		for {
			a.mu.Lock()
			if len(queue.jobs) == 0 {
				a.mu.Unlock()
				break
			}
			job := queue.jobs[0]
			queue.jobs = queue.jobs[1:]
			a.mu.Unlock()

			a.run(itemID, job)
		}
	}
}

func (a *StockAdjuster) run(itemID uuid.UUID, job stockJob) {
	delta := job.amount
	if job.operation == "remove" {
		delta = -job.amount
	}

	// Snapshot, then move optimistically.
	a.mu.Lock()
	snapshot := a.quantities[itemID]
	a.quantities[itemID] = snapshot + delta
	a.mu.Unlock()

	item, err := a.api.AdjustItemQuantity(a.ctx, a.sess, itemID, job.operation, job.amount)

	a.mu.Lock()
	if err != nil {
		// Roll back to the exact pre-move value.
		a.quantities[itemID] = snapshot
	} else {
		// The server's figure wins over the optimistic guess.
		a.quantities[itemID] = item.Quantity
	}
	quantity := a.quantities[itemID]
	a.mu.Unlock()

	if a.onUpdate != nil {
		a.onUpdate(StockUpdate{ItemID: itemID, Quantity: quantity, Err: err})
	}
}

// Close stops accepting adjustments and cancels in-flight requests.
func (a *StockAdjuster) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	a.wg.Wait()
}
