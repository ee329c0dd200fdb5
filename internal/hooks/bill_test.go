package hooks

import (
	"context"
	"testing"

	"github.com/arjunvn/shopstack/internal/store"
)

func seedUser(t *testing.T, st *store.Mem, role string) string {
	t.Helper()
	id, err := st.Insert(context.Background(), "users", store.Document{
		"fullName": "Test User",
		"email":    "user@example.com",
		"role":     role,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return id
}

func seedOrder(t *testing.T, st *store.Mem, total float64) string {
	t.Helper()
	id, err := st.Insert(context.Background(), "orders", store.Document{
		"status": "pending",
		"total":  total,
	})
	if err != nil {
		t.Fatalf("seeding order: %v", err)
	}
	return id
}

func TestBillHookComputesAmounts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMem()
	userID := seedUser(t, st, "customer")
	orderID := seedOrder(t, st, 100)

	hook := Bill(st)
	res, err := hook(ctx, store.Document{
		"userId":   userID,
		"orderId":  orderID,
		"discount": 10.0,
	})
	if err != nil {
		t.Fatalf("hook failed: %v", err)
	}
	if !res.Valid {
		t.Fatalf("expected acceptance, got: %s", res.Message)
	}

	if res.Data["subtotal"] != 100.0 {
		t.Fatalf("expected subtotal 100, got %v", res.Data["subtotal"])
	}
	if res.Data["tax"] != 5.0 {
		t.Fatalf("expected tax 5, got %v", res.Data["tax"])
	}
	if res.Data["discount"] != 10.0 {
		t.Fatalf("expected discount 10, got %v", res.Data["discount"])
	}
	if res.Data["total"] != 95.0 {
		t.Fatalf("expected total 95, got %v", res.Data["total"])
	}
	if res.Data["createdAt"] == nil {
		t.Fatal("expected a creation timestamp")
	}
}

func TestBillHookDefaultsDiscount(t *testing.T) {
	ctx := context.Background()
	st := store.NewMem()
	userID := seedUser(t, st, "customer")
	orderID := seedOrder(t, st, 40)

	hook := Bill(st)
	res, err := hook(ctx, store.Document{"userId": userID, "orderId": orderID})
	if err != nil || !res.Valid {
		t.Fatalf("hook failed: %v %s", err, res.Message)
	}
	if res.Data["discount"] != 0.0 {
		t.Fatalf("expected zero discount, got %v", res.Data["discount"])
	}
	if res.Data["total"] != 42.0 {
		t.Fatalf("expected total 42, got %v", res.Data["total"])
	}
}

func TestBillHookRejectsNonCustomer(t *testing.T) {
	ctx := context.Background()
	st := store.NewMem()
	userID := seedUser(t, st, "seller")
	orderID := seedOrder(t, st, 100)

	hook := Bill(st)
	res, err := hook(ctx, store.Document{"userId": userID, "orderId": orderID})
	if err != nil {
		t.Fatalf("hook failed: %v", err)
	}
	if res.Valid {
		t.Fatal("expected rejection for non-customer")
	}
}

func TestBillHookRejectsUnknownUser(t *testing.T) {
	ctx := context.Background()
	st := store.NewMem()
	orderID := seedOrder(t, st, 100)

	hook := Bill(st)
	res, err := hook(ctx, store.Document{"userId": "ghost", "orderId": orderID})
	if err != nil {
		t.Fatalf("hook failed: %v", err)
	}
	if res.Valid {
		t.Fatal("expected rejection for unknown user")
	}
}

func TestBillHookRejectsUnknownOrder(t *testing.T) {
	ctx := context.Background()
	st := store.NewMem()
	userID := seedUser(t, st, "customer")

	hook := Bill(st)
	res, err := hook(ctx, store.Document{"userId": userID, "orderId": "ghost"})
	if err != nil {
		t.Fatalf("hook failed: %v", err)
	}
	if res.Valid {
		t.Fatal("expected rejection for missing order")
	}
	if res.Message != "Associated order not found" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}
