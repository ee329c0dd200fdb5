// Package hooks holds the business-rule hooks plugged into the document
// service's create pipeline.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/arjunvn/shopstack/internal/docserv"
	"github.com/arjunvn/shopstack/internal/store"
)

const (
	productsCollection = "products"
	initialOrderStatus = "pending"
)

// Order builds the order-creation hook. Items are processed strictly in the
// order supplied: each one fetches its product, reserves stock through a
// conditional decrement, and contributes price x quantity to the running
// total. Any failure releases the stock already reserved for earlier items
// before rejecting the whole order.
func Order(st store.Store, log *zap.Logger) docserv.Hook {
	return func(ctx context.Context, data store.Document) (docserv.HookResult, error) {
		items, ok := data["items"].([]any)
		if !ok || len(items) == 0 {
			return docserv.Reject("order must contain at least one item"), nil
		}

		type reservation struct {
			productID string
			quantity  int
		}
		var reserved []reservation
		release := func() {
			for _, r := range reserved {
				if err := st.AdjustField(ctx, productsCollection, r.productID, "stock", r.quantity); err != nil {
					log.Warn("failed to release reserved stock",
						zap.String("productId", r.productID),
						zap.Int("quantity", r.quantity),
						zap.Error(err))
				}
			}
		}

		total := 0.0
		updatedItems := make([]any, 0, len(items))

		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				release()
				return docserv.Reject("invalid order item"), nil
			}
			productID := cast.ToString(item["productId"])
			quantity := cast.ToInt(item["quantity"])

			product, err := st.FindByID(ctx, productsCollection, productID)
			if errors.Is(err, store.ErrNotFound) {
				release()
				return docserv.Reject(fmt.Sprintf("Product with ID %s not found", productID)), nil
			}
			if err != nil {
				release()
				return docserv.HookResult{}, err
			}

			name := cast.ToString(product["name"])
			if name == "" {
				name = productID
			}
			if cast.ToInt(product["stock"]) < quantity {
				release()
				return docserv.Reject("Insufficient stock for product " + name), nil
			}

			if err := st.DecrementField(ctx, productsCollection, productID, "stock", quantity); err != nil {
				if errors.Is(err, store.ErrConditionFailed) {
					// Depleted by a concurrent order between the read and
					// the reservation.
					release()
					return docserv.Reject("Insufficient stock for product " + name), nil
				}
				release()
				return docserv.HookResult{}, err
			}
			reserved = append(reserved, reservation{productID: productID, quantity: quantity})

			price := cast.ToFloat64(product["price"])
			subTotal := price * float64(quantity)
			total += subTotal

			enriched := map[string]any{}
			for k, v := range item {
				enriched[k] = v
			}
			enriched["price"] = price
			enriched["subTotal"] = subTotal
			updatedItems = append(updatedItems, enriched)
		}

		out := store.Document{}
		for k, v := range data {
			out[k] = v
		}
		out["items"] = updatedItems
		out["total"] = total
		out["status"] = initialOrderStatus
		out["createdAt"] = time.Now().UTC().Format(time.RFC3339)

		return docserv.Accept(out), nil
	}
}
