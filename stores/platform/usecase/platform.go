package usecase

import (
	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/keys"
	"github.com/auctra/goapi/service/query"
)

type Config struct {
	Platform domain.PlatformRepo
	Custody  domain.TokenCustody
	Query    query.Mongo

	// Admin is the only identity allowed to withdraw accumulated fees.
	Admin domain.Address
}

type platformUsecase struct {
	cfg Config
}

func New(cfg Config) domain.PlatformUsecase {
	return &platformUsecase{cfg: cfg}
}

func (im *platformUsecase) Initialize(c ctx.Ctx) (*domain.PlatformWallet, error) {
	if wallet, err := im.cfg.Platform.FindOne(c); err == nil {
		return wallet, nil
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	account, bump, err := keys.Derive(keys.KindPlatform)
	if err != nil {
		c.WithField("err", err).Error("keys.Derive failed")
		return nil, err
	}
	wallet := &domain.PlatformWallet{
		Account: account,
		Bump:    bump,
	}
	if err := im.cfg.Platform.Create(c, wallet); err != nil {
		// lost a race against another instance booting, the record is there
		if err == domain.ErrConflict {
			return im.cfg.Platform.FindOne(c)
		}
		return nil, err
	}
	return wallet, nil
}

func (im *platformUsecase) Get(c ctx.Ctx) (*domain.PlatformWallet, error) {
	return im.cfg.Platform.FindOne(c)
}

func (im *platformUsecase) WithdrawFees(c ctx.Ctx, caller domain.Address, amount uint64, destination domain.Address) error {
	if !caller.ToLower().Equals(im.cfg.Admin) {
		return domain.ErrUnauthorized
	}
	if amount == 0 || destination.IsEmpty() {
		return domain.ErrBadParamInput
	}

	err := im.cfg.Query.RunWithTransaction(c, func(txc ctx.Ctx) error {
		wallet, err := im.cfg.Platform.FindOne(txc)
		if err != nil {
			return err
		}
		if err := im.cfg.Platform.DeductFees(txc, amount); err != nil {
			return err
		}
		return im.cfg.Custody.Release(txc, wallet.Account, destination.ToLower(), amount)
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":         err,
			"caller":      caller,
			"amount":      amount,
			"destination": destination,
		}).Warn("withdraw fees rejected")
		return err
	}
	return nil
}

func (im *platformUsecase) Deposit(c ctx.Ctx, caller, account domain.Address, amount uint64) error {
	if !caller.ToLower().Equals(im.cfg.Admin) {
		return domain.ErrUnauthorized
	}
	if amount == 0 || account.IsEmpty() {
		return domain.ErrBadParamInput
	}
	if err := im.cfg.Custody.Deposit(c, account.ToLower(), amount); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  amount,
		}).Error("custody deposit failed")
		return err
	}
	return nil
}

func (im *platformUsecase) SeedAsset(c ctx.Ctx, caller, mint, holder domain.Address) error {
	if !caller.ToLower().Equals(im.cfg.Admin) {
		return domain.ErrUnauthorized
	}
	if mint.IsEmpty() || holder.IsEmpty() {
		return domain.ErrBadParamInput
	}
	if err := im.cfg.Custody.SetAssetHolder(c, mint.ToLower(), holder.ToLower()); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"mint":   mint,
			"holder": holder,
		}).Error("custody asset seed failed")
		return err
	}
	return nil
}
