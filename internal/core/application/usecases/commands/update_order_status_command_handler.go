package commands

import (
	"context"
	"errors"
	"fmt"

	"sales/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler handles order status transitions.
//
// The handler loads the order, validates the transition against the status
// state machine, and persists the new status with a compare-and-swap on the
// status it validated against. Two requests racing on the same order cannot
// both win: the slower write matches zero rows and is reported as a conflict
// rather than overwriting the newer state. No announcement is emitted for
// status changes; only order creation is published to the broker.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
// Requires an OrderUoWFactory for transactional persistence.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status transition command.
//
// Returns found=false (with a nil error) when the order does not exist; this
// mirrors the repository's existence result so callers can distinguish a
// missing order from an illegal transition, which is returned as a typed
// validation error with the order left unchanged. A transition that loses a
// race against a concurrent writer is reported the same way: typed invalid
// error, order unchanged by this request.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	previous := existing.Status()
	if err = existing.ChangeStatus(cmd.Status()); err != nil {
		return true, err
	}

	updated, err := orderRepo.UpdateStatus(ctx, existing.ID(), previous, existing.Status())
	if err != nil {
		return false, err
	}
	if !updated {
		// The status moved between our read and the swap; the transition was
		// validated against a stale snapshot and must not be applied.
		return true, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order %d was modified concurrently", existing.ID()),
		)
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
