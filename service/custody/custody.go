package custody

import (
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/service/query"
)

// TokenAccount holds fungible funds for one account address
type TokenAccount struct {
	Account domain.Address `json:"account" bson:"account"`
	Balance uint64         `json:"balance" bson:"balance"`
}

// AssetAccount records which account currently holds a minted asset
type AssetAccount struct {
	Mint   domain.Address `json:"mint" bson:"mint"`
	Holder domain.Address `json:"holder" bson:"holder"`
}

// Custody is a ledger-backed token custody layer. Debits are guarded by a
// balance-covering selector so an account can never go below zero, racing
// debits lose with ErrInsufficientFunds instead of corrupting balances.
type Custody struct {
	q query.Mongo
}

func New(q query.Mongo) *Custody {
	return &Custody{q: q}
}

var _ domain.TokenCustody = (*Custody)(nil)

func (im *Custody) Lock(c ctx.Ctx, from, escrow domain.Address, amount uint64) error {
	return im.move(c, from, escrow, amount, domain.ErrInsufficientFunds)
}

func (im *Custody) Release(c ctx.Ctx, escrow, to domain.Address, amount uint64) error {
	return im.move(c, escrow, to, amount, xerrors.Errorf("custody: escrow underflow: %w", domain.ErrInsufficientFunds))
}

func (im *Custody) move(c ctx.Ctx, from, to domain.Address, amount uint64, insufficientErr error) error {
	if amount == 0 {
		return nil
	}

	selector := bson.M{"account": from, "balance": bson.M{"$gte": amount}}
	update := bson.M{"$inc": bson.M{"balance": -int64(amount)}}
	if err := im.q.CustomPatch(c, domain.TableTokenAccounts, selector, update, false); err != nil {
		if err == query.ErrNotFound {
			return insufficientErr
		}
		c.WithFields(log.Fields{"err": err, "from": from, "amount": amount}).Error("custody debit failed")
		return err
	}

	credited := &TokenAccount{}
	if err := im.q.Increment(c, domain.TableTokenAccounts, bson.M{"account": to}, credited, "balance", amount); err != nil {
		c.WithFields(log.Fields{"err": err, "to": to, "amount": amount}).Error("custody credit failed")
		return err
	}
	return nil
}

func (im *Custody) Balance(c ctx.Ctx, account domain.Address) (uint64, error) {
	acc := &TokenAccount{}
	if err := im.q.FindOne(c, domain.TableTokenAccounts, bson.M{"account": account}, acc); err != nil {
		if err == query.ErrNotFound {
			return 0, nil
		}
		c.WithFields(log.Fields{"err": err, "account": account}).Error("custody balance lookup failed")
		return 0, err
	}
	return acc.Balance, nil
}

func (im *Custody) TransferAsset(c ctx.Ctx, mint, from, to domain.Address) error {
	selector := bson.M{"mint": mint, "holder": from}
	if err := im.q.Patch(c, domain.TableAssetAccounts, selector, bson.M{"holder": to}); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrInvalidMint
		}
		c.WithFields(log.Fields{"err": err, "mint": mint, "from": from, "to": to}).Error("custody asset transfer failed")
		return err
	}
	return nil
}

func (im *Custody) AssetHolder(c ctx.Ctx, mint domain.Address) (domain.Address, error) {
	acc := &AssetAccount{}
	if err := im.q.FindOne(c, domain.TableAssetAccounts, bson.M{"mint": mint}, acc); err != nil {
		if err == query.ErrNotFound {
			return domain.EmptyAddress, domain.ErrInvalidMint
		}
		c.WithFields(log.Fields{"err": err, "mint": mint}).Error("custody asset lookup failed")
		return domain.EmptyAddress, err
	}
	return acc.Holder, nil
}

// Deposit credits funds to an account, used by operator tooling to mirror
// deposits observed outside the engine.
func (im *Custody) Deposit(c ctx.Ctx, account domain.Address, amount uint64) error {
	acc := &TokenAccount{}
	return im.q.Increment(c, domain.TableTokenAccounts, bson.M{"account": account}, acc, "balance", amount)
}

// SetAssetHolder seeds or overrides an asset custody record, operator tooling
// only.
func (im *Custody) SetAssetHolder(c ctx.Ctx, mint, holder domain.Address) error {
	return im.q.Upsert(c, domain.TableAssetAccounts, bson.M{"mint": mint}, &AssetAccount{Mint: mint, Holder: holder})
}
