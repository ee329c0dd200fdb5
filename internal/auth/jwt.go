package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier issues and verifies locally-signed HS256 tokens carrying
// {uid, email, role, exp} claims.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Issue signs a token for the given identity, expiring after ttl.
func (v *JWTVerifier) Issue(uid, email string, role Role, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":   uid,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *JWTVerifier) Authenticate(_ context.Context, bearerToken string) (Principal, error) {
	token, err := jwt.Parse(bearerToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	uid, _ := claims["uid"].(string)
	email, _ := claims["email"].(string)
	roleClaim, _ := claims["role"].(string)
	role, ok := ParseRole(roleClaim)
	if uid == "" || !ok {
		return Principal{}, ErrUnauthenticated
	}

	return Principal{UID: uid, Email: email, Role: role}, nil
}
