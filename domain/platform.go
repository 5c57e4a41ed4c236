package domain

import (
	"github.com/auctra/goapi/base/ctx"
)

// PlatformWallet accumulates platform fees, one singleton per deployment.
// The administrator identity allowed to withdraw is injected at wiring time,
// not compiled in.
type PlatformWallet struct {
	Account    Address `json:"account" bson:"account"`
	FeeBalance uint64  `json:"feeBalance" bson:"feeBalance"`
	Bump       uint8   `json:"bump" bson:"bump"`
}

type PlatformRepo interface {
	FindOne(c ctx.Ctx) (*PlatformWallet, error)
	Create(c ctx.Ctx, wallet *PlatformWallet) error

	// AddFees credits `amount` to the singleton's fee balance.
	AddFees(c ctx.Ctx, amount uint64) error

	// DeductFees debits `amount` iff the balance covers it. Returns
	// ErrInsufficientTreasuryBalance otherwise.
	DeductFees(c ctx.Ctx, amount uint64) error
}

type PlatformUsecase interface {
	// Initialize creates the singleton wallet record, a safe no-op when it
	// already exists.
	Initialize(c ctx.Ctx) (*PlatformWallet, error)
	Get(c ctx.Ctx) (*PlatformWallet, error)
	WithdrawFees(c ctx.Ctx, caller Address, amount uint64, destination Address) error

	// Deposit credits funds to an account, operator tooling for mirroring
	// deposits observed outside the engine. Admin only.
	Deposit(c ctx.Ctx, caller, account Address, amount uint64) error

	// SeedAsset installs the custody record of a freshly minted asset so its
	// holder can register and list it. Admin only.
	SeedAsset(c ctx.Ctx, caller, mint, holder Address) error
}
