package hooks

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cast"

	"github.com/arjunvn/shopstack/internal/docserv"
	"github.com/arjunvn/shopstack/internal/models"
	"github.com/arjunvn/shopstack/internal/store"
)

// taxRate is the fixed billing tax rate.
const taxRate = 0.05

// Bill builds the bill-creation hook: the referenced user must exist with
// the customer role, the referenced order must exist, and the amounts are
// computed as subtotal = order total, tax = 5% of subtotal,
// total = subtotal + tax - discount.
func Bill(st store.Store) docserv.Hook {
	return func(ctx context.Context, data store.Document) (docserv.HookResult, error) {
		user, err := st.FindByID(ctx, "users", cast.ToString(data["userId"]))
		if errors.Is(err, store.ErrNotFound) || (err == nil && cast.ToString(user["role"]) != models.RoleCustomer) {
			return docserv.Reject("Invalid user: Only customers can be billed"), nil
		}
		if err != nil {
			return docserv.HookResult{}, err
		}

		order, err := st.FindByID(ctx, "orders", cast.ToString(data["orderId"]))
		if errors.Is(err, store.ErrNotFound) {
			return docserv.Reject("Associated order not found"), nil
		}
		if err != nil {
			return docserv.HookResult{}, err
		}

		subtotal := cast.ToFloat64(order["total"])
		tax := subtotal * taxRate
		discount := cast.ToFloat64(data["discount"])
		total := subtotal + tax - discount

		out := store.Document{}
		for k, v := range data {
			out[k] = v
		}
		out["subtotal"] = subtotal
		out["tax"] = tax
		out["discount"] = discount
		out["total"] = total
		out["createdAt"] = time.Now().UTC().Format(time.RFC3339)

		return docserv.Accept(out), nil
	}
}
