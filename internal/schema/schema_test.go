package schema

import (
	"testing"

	"github.com/arjunvn/shopstack/internal/store"
)

func TestProductValid(t *testing.T) {
	doc, ferrs := Product.Validate(store.Document{
		"name":        "Teapot",
		"description": "A ceramic teapot",
		"price":       12.5,
		"category":    "kitchen",
		"stock":       float64(4),
		"image":       "https://cdn.example.com/teapot.png",
		"unknown":     "dropped",
	})
	if len(ferrs) > 0 {
		t.Fatalf("unexpected validation errors: %v", ferrs)
	}
	if doc["name"] != "Teapot" {
		t.Fatalf("unexpected name: %v", doc["name"])
	}
	if doc["price"] != 12.5 {
		t.Fatalf("unexpected price: %v", doc["price"])
	}
	if _, ok := doc["unknown"]; ok {
		t.Fatal("unknown fields must be stripped")
	}
}

func TestProductInvalid(t *testing.T) {
	cases := []struct {
		name  string
		input store.Document
		field string
	}{
		{
			name:  "missing name",
			input: store.Document{"description": "d", "price": 1.0, "category": "c", "stock": float64(1), "image": "https://x.example/i.png"},
			field: "name",
		},
		{
			name:  "negative price",
			input: store.Document{"name": "n", "description": "d", "price": -1.0, "category": "c", "stock": float64(1), "image": "https://x.example/i.png"},
			field: "price",
		},
		{
			name:  "negative stock",
			input: store.Document{"name": "n", "description": "d", "price": 1.0, "category": "c", "stock": float64(-1), "image": "https://x.example/i.png"},
			field: "stock",
		},
		{
			name:  "bad image url",
			input: store.Document{"name": "n", "description": "d", "price": 1.0, "category": "c", "stock": float64(1), "image": "not a url"},
			field: "image",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, ferrs := Product.Validate(tc.input)
			if doc != nil {
				t.Fatal("invalid input must not yield a document")
			}
			if len(ferrs) == 0 {
				t.Fatal("expected a non-empty error list")
			}
			found := false
			for _, fe := range ferrs {
				if fe.Field == tc.field {
					found = true
					if fe.Message == "" {
						t.Fatal("field error must carry a message")
					}
				}
			}
			if !found {
				t.Fatalf("expected an error on field %q, got %v", tc.field, ferrs)
			}
		})
	}
}

func TestProductFractionalStock(t *testing.T) {
	_, ferrs := Product.Validate(store.Document{
		"name":        "Teapot",
		"description": "d",
		"price":       1.0,
		"category":    "c",
		"stock":       1.5,
		"image":       "https://x.example/i.png",
	})
	if len(ferrs) == 0 {
		t.Fatal("fractional stock must be rejected")
	}
}

func TestSignupRole(t *testing.T) {
	_, ferrs := Signup.Validate(store.Document{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret1",
		"role":     "superuser",
	})
	if len(ferrs) == 0 {
		t.Fatal("unknown role must be rejected")
	}
	if ferrs[0].Field != "role" {
		t.Fatalf("expected role error, got %v", ferrs)
	}
}

func TestOrderItems(t *testing.T) {
	t.Run("empty items", func(t *testing.T) {
		_, ferrs := Order.Validate(store.Document{"userId": "u1", "items": []any{}})
		if len(ferrs) == 0 {
			t.Fatal("empty item list must be rejected")
		}
	})

	t.Run("nested quantity", func(t *testing.T) {
		_, ferrs := Order.Validate(store.Document{
			"userId": "u1",
			"items":  []any{map[string]any{"productId": "p1", "quantity": float64(0)}},
		})
		if len(ferrs) == 0 {
			t.Fatal("zero quantity must be rejected")
		}
	})

	t.Run("valid", func(t *testing.T) {
		doc, ferrs := Order.Validate(store.Document{
			"userId": "u1",
			"items":  []any{map[string]any{"productId": "p1", "quantity": float64(2)}},
		})
		if len(ferrs) > 0 {
			t.Fatalf("unexpected errors: %v", ferrs)
		}
		items, ok := doc["items"].([]any)
		if !ok || len(items) != 1 {
			t.Fatalf("expected one item, got %v", doc["items"])
		}
		item, ok := items[0].(map[string]any)
		if !ok {
			t.Fatalf("expected item map, got %T", items[0])
		}
		if item["productId"] != "p1" {
			t.Fatalf("unexpected item: %v", item)
		}
	})
}
