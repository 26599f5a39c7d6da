package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"solemate_server/database"
	"solemate_server/lib"
	"solemate_server/structs"
	"solemate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrderService turns a session's cart tree into an immutable order. The
// cart lines are moved onto the order in one transaction, so a line never
// belongs to a tree and an order at the same time.
type OrderService struct {
	logger        *gecho.Logger
	cfg           *structs.Config
	db            *database.DB
	cartService   *CartService
	notifyService *NotifyService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cartService *CartService, notifyService *NotifyService) *OrderService {
	return &OrderService{
		logger:        logger,
		cfg:           cfg,
		db:            db,
		cartService:   cartService,
		notifyService: notifyService,
	}
}

// normalizeCheckout trims and sanitizes the checkout form and collects the
// missing required fields. Phone2 stays optional.
func normalizeCheckout(req *structs.CheckoutRequest) (structs.CheckoutRequest, []lib.FieldError) {
	normalized := structs.CheckoutRequest{
		FIO:     lib.SanitizeString(req.FIO, true, true),
		Phone:   lib.SanitizeString(req.Phone, true, true),
		Phone2:  lib.SanitizeString(req.Phone2, true, true),
		Address: lib.SanitizeString(req.Address, true, true),
	}

	var fields []lib.FieldError
	if strings.TrimSpace(normalized.FIO) == "" {
		fields = append(fields, lib.FieldError{Field: "fio", Message: "is required"})
	}
	if strings.TrimSpace(normalized.Phone) == "" {
		fields = append(fields, lib.FieldError{Field: "phone", Message: "is required"})
	}
	if strings.TrimSpace(normalized.Address) == "" {
		fields = append(fields, lib.FieldError{Field: "address", Message: "is required"})
	}
	return normalized, fields
}

// Submit validates the checkout form, commits the order and kicks off the
// chat notification. The notification runs after the commit and can never
// fail the checkout.
func (os *OrderService) Submit(ctx context.Context, token string, req *structs.CheckoutRequest) (*structs.OrderConfirmation, error) {
	startTime := time.Now()

	form, fieldErrs := normalizeCheckout(req)
	if len(fieldErrs) > 0 {
		return nil, lib.NewValidationError(fieldErrs...)
	}

	tree, err := os.cartService.ResolveSessionCart(ctx, token)
	if err != nil {
		return nil, err
	}

	// An empty tree still checks out: the order is committed with zero
	// lines and a zero total.
	order, err := os.commitOrder(ctx, tree, &form)
	if err != nil {
		return nil, err
	}

	confirmation := buildOrderConfirmation(order, tree.Items)

	go os.afterCommit(confirmation)

	os.logger.Info("Order committed",
		gecho.Field("order_id", order.ID),
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("lines", len(confirmation.Lines)),
		gecho.Field("total_cents", confirmation.TotalCents),
		gecho.Field("duration", time.Since(startTime)),
	)
	return confirmation, nil
}

// commitOrder inserts the order header and moves the tree's lines onto it
// atomically. The generated order number carries a random suffix, so a
// unique collision is retried with a fresh number.
func (os *OrderService) commitOrder(ctx context.Context, tree *tables.CartTree, form *structs.CheckoutRequest) (*tables.Order, error) {
	const maxNumberAttempts = 3

	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order := &tables.Order{
			ID:          uuid.New(),
			OrderNumber: lib.GenerateOrderNumber(),
			FullName:    form.FIO,
			Phone:       form.Phone,
			Phone2:      form.Phone2,
			Address:     form.Address,
			CreatedAt:   time.Now(),
		}

		err := database.Transaction(os.db, ctx, func(tx bun.Tx) error {
			if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}

			if _, err := tx.NewUpdate().
				Model((*tables.CartItem)(nil)).
				Set("order_id = ?", order.ID).
				Set("tree_id = NULL").
				Set("updated_at = ?", time.Now()).
				Where("tree_id = ?", tree.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to move cart lines: %w", err)
			}

			productIDs := make([]uuid.UUID, 0, len(tree.Items))
			seen := make(map[uuid.UUID]bool)
			for _, item := range tree.Items {
				if !seen[item.ProductID] {
					seen[item.ProductID] = true
					productIDs = append(productIDs, item.ProductID)
				}
			}
			if len(productIDs) > 0 {
				if _, err := tx.NewUpdate().
					Model((*tables.Product)(nil)).
					Set("times_ordered = times_ordered + 1").
					Where("id IN (?)", bun.In(productIDs)).
					Exec(ctx); err != nil {
					return fmt.Errorf("failed to bump order counters: %w", err)
				}
			}

			if _, err := tx.NewUpdate().
				Model((*tables.CartTree)(nil)).
				Set("updated_at = ?", time.Now()).
				Where("id = ?", tree.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to touch cart tree: %w", err)
			}

			return nil
		})

		if err == nil {
			return order, nil
		}
		if errors.Is(err, lib.ErrConflict) {
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to allocate order number: %w", lastErr)
}

// buildOrderConfirmation snapshots the moved lines with the prices in
// effect at commit time. The total is computed here and returned, never
// written to storage.
func buildOrderConfirmation(order *tables.Order, items []tables.CartItem) *structs.OrderConfirmation {
	confirmation := &structs.OrderConfirmation{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		FullName:    order.FullName,
		Phone:       order.Phone,
		Phone2:      order.Phone2,
		Address:     order.Address,
		CreatedAt:   order.CreatedAt,
	}

	for i := range items {
		item := &items[i]
		line := structs.CartLineView{
			ItemID:         item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents(),
			LineTotalCents: item.LineTotalCents(),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		if item.Variant != nil {
			line.VariantName = item.Variant.Name
		}
		if item.Size != nil {
			line.SizeValue = item.Size.Value
		}
		confirmation.Lines = append(confirmation.Lines, line)
		confirmation.TotalCents += line.LineTotalCents
	}
	return confirmation
}

// afterCommit sends the chat notification, best effort.
func (os *OrderService) afterCommit(confirmation *structs.OrderConfirmation) {
	defer func() {
		if r := recover(); r != nil {
			os.logger.Error("Panic in post-checkout side effects", gecho.Field("panic", r))
		}
	}()

	sent, err := os.notifyService.NotifyOrder(context.Background(), confirmation)
	if err != nil {
		os.logger.Warn("Order notification failed",
			gecho.Field("error", err),
			gecho.Field("order_number", confirmation.OrderNumber),
		)
	} else if !sent {
		os.logger.Debug("Order notification skipped, notifier not configured",
			gecho.Field("order_number", confirmation.OrderNumber),
		)
	}
}
