package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/auctra/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

// AuthUsecase issues and verifies caller identities. The engine itself only
// trusts equality checks against stored addresses; signature verification
// stays inside this collaborator.
type AuthUsecase interface {
	// GenerateNonce issues a short-lived nonce the wallet has to sign to
	// prove control of the address.
	GenerateNonce(c ctx.Ctx, address Address) (string, error)

	// SignToken validates the signature over the previously issued nonce and
	// returns a bearer token. The nonce is single use.
	SignToken(c ctx.Ctx, address Address, signature string) (string, error)

	ParseToken(c ctx.Ctx, token string) (string, error)
}
