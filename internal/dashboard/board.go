package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"minis-storefront/internal/models"
)

// OrdersAPI is the server side of the orders board.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	SetCompleted(ctx context.Context, orderID string, completed bool) error
	DeleteOrder(ctx context.Context, orderID string) error
}

// OrdersBoard is the admin view of orders. Toggle and Delete change the
// local view first and revert it when the server call fails. Only one
// change may be in flight at a time.
type OrdersBoard struct {
	api      OrdersAPI
	mutation Mutation[[]models.Order]

	mu     sync.Mutex
	orders []models.Order
	err    error
}

func NewOrdersBoard(api OrdersAPI) *OrdersBoard {
	return &OrdersBoard{api: api}
}

// Refresh replaces the view with the server's list. A failed refresh keeps
// the previous view and records the error for display.
func (b *OrdersBoard) Refresh(ctx context.Context) error {
	orders, err := b.api.ListOrders(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.err = err
		return err
	}
	b.orders, b.err = orders, nil
	return nil
}

// Orders returns a copy of the current view.
func (b *OrdersBoard) Orders() []models.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.orders)
}

// Err is the last failure shown to the user, if any.
func (b *OrdersBoard) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *OrdersBoard) MutationState() MutationState {
	return b.mutation.State()
}

// Toggle flips the completed flag of orderID.
func (b *OrdersBoard) Toggle(ctx context.Context, orderID string) error {
	var completed bool
	return b.apply(orderID, func(orders []models.Order, i int) []models.Order {
		completed = !orders[i].Completed
		orders[i].Completed = completed
		return orders
	}, func() error {
		return b.api.SetCompleted(ctx, orderID, completed)
	})
}

// Delete removes orderID from the board and the server.
func (b *OrdersBoard) Delete(ctx context.Context, orderID string) error {
	return b.apply(orderID, func(orders []models.Order, i int) []models.Order {
		return slices.Delete(orders, i, i+1)
	}, func() error {
		return b.api.DeleteOrder(ctx, orderID)
	})
}

func (b *OrdersBoard) apply(orderID string, local func([]models.Order, int) []models.Order, remote func() error) error {
	b.mu.Lock()
	i := slices.IndexFunc(b.orders, func(o models.Order) bool { return o.ID == orderID })
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("order %s is not on the board", orderID)
	}
	if err := b.mutation.Begin(slices.Clone(b.orders)); err != nil {
		b.mu.Unlock()
		return err
	}
	b.orders = local(slices.Clone(b.orders), i)
	b.mu.Unlock()

	err := remote()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		if snapshot, ok := b.mutation.Rollback(); ok {
			b.orders = snapshot
		}
		b.err = fmt.Errorf("%w: %v", ErrRolledBack, err)
		return b.err
	}
	b.mutation.Commit()
	b.err = nil
	return nil
}
