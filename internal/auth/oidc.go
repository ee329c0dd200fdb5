package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCVerifier delegates token verification to a managed identity provider
// and maps its decoded claims onto a principal. Tokens with no recognized
// role claim authenticate as customers.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discovering oidc provider: %w", err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *OIDCVerifier) Authenticate(ctx context.Context, bearerToken string) (Principal, error) {
	idToken, err := v.verifier.Verify(ctx, bearerToken)
	if err != nil {
		return Principal{}, ErrUnauthenticated
	}

	var claims struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Principal{}, ErrUnauthenticated
	}

	role, ok := ParseRole(claims.Role)
	if !ok {
		role = RoleCustomer
	}

	return Principal{UID: idToken.Subject, Email: claims.Email, Role: role}, nil
}
