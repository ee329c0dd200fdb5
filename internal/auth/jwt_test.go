package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	token, err := v.Issue("u1", "alice@example.com", RoleSeller, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	p, err := v.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if p.UID != "u1" || p.Email != "alice@example.com" || p.Role != RoleSeller {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestJWTExpired(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	token, err := v.Issue("u1", "alice@example.com", RoleCustomer, -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := v.Authenticate(context.Background(), token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	issuer := NewJWTVerifier("secret-a")
	verifier := NewJWTVerifier("secret-b")

	token, _ := issuer.Issue("u1", "alice@example.com", RoleAdmin, time.Hour)
	if _, err := verifier.Authenticate(context.Background(), token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestJWTGarbage(t *testing.T) {
	v := NewJWTVerifier("test-secret")
	if _, err := v.Authenticate(context.Background(), "not.a.token"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "seller", "customer"} {
		if _, ok := ParseRole(s); !ok {
			t.Fatalf("expected %q to parse", s)
		}
	}
	if _, ok := ParseRole("root"); ok {
		t.Fatal("unknown role must not parse")
	}
}

func TestAuthorize(t *testing.T) {
	p := Principal{UID: "u1", Role: RoleSeller}

	if !Authorize(p, RoleSeller) {
		t.Fatal("matching role must be allowed")
	}
	// No hierarchy: admin is not implied and does not imply.
	if Authorize(p, RoleAdmin) {
		t.Fatal("non-matching role must be denied")
	}
	if Authorize(Principal{Role: RoleAdmin}, RoleSeller) {
		t.Fatal("admin does not satisfy a seller requirement")
	}
}
