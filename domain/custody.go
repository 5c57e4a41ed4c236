package domain

import (
	"github.com/auctra/goapi/base/ctx"
)

// TokenCustody is the custody collaborator the engine moves value through.
// The engine never manipulates raw balances directly; every fund movement is
// a Lock into or a Release out of an escrow account.
type TokenCustody interface {
	// Lock moves `amount` from the payer into an escrow account. Returns
	// ErrInsufficientFunds when the payer cannot cover it.
	Lock(c ctx.Ctx, from, escrow Address, amount uint64) error

	// Release moves `amount` out of an escrow account to a recipient.
	Release(c ctx.Ctx, escrow, to Address, amount uint64) error

	// Balance reports the funds held by an account.
	Balance(c ctx.Ctx, account Address) (uint64, error)

	// TransferAsset moves custody of the asset identified by `mint` from its
	// current holder to a new one. Returns ErrInvalidMint when `from` does
	// not hold the asset.
	TransferAsset(c ctx.Ctx, mint, from, to Address) error

	// AssetHolder reports which account currently holds the asset.
	AssetHolder(c ctx.Ctx, mint Address) (Address, error)

	// Deposit credits funds to an account, mirroring a deposit observed
	// outside the engine.
	Deposit(c ctx.Ctx, account Address, amount uint64) error

	// SetAssetHolder seeds or overrides an asset custody record.
	SetAssetHolder(c ctx.Ctx, mint, holder Address) error
}
