package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/service/query"
)

type platformRepo struct {
	q query.Mongo
}

func NewPlatformRepo(q query.Mongo) domain.PlatformRepo {
	return &platformRepo{q: q}
}

func (im *platformRepo) FindOne(c ctx.Ctx) (*domain.PlatformWallet, error) {
	wallet := &domain.PlatformWallet{}
	if err := im.q.FindOne(c, domain.TablePlatformWallets, bson.M{}, wallet); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return wallet, nil
}

func (im *platformRepo) Create(c ctx.Ctx, wallet *domain.PlatformWallet) error {
	if err := im.q.Insert(c, domain.TablePlatformWallets, wallet); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		c.WithFields(log.Fields{
			"err":    err,
			"wallet": wallet,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *platformRepo) AddFees(c ctx.Ctx, amount uint64) error {
	wallet := &domain.PlatformWallet{}
	if err := im.q.Increment(c, domain.TablePlatformWallets, bson.M{}, wallet, "feeBalance", amount); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"amount": amount,
		}).Error("q.Increment failed")
		return err
	}
	return nil
}

func (im *platformRepo) DeductFees(c ctx.Ctx, amount uint64) error {
	selector := bson.M{
		"feeBalance": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"feeBalance": -int64(amount)},
	}
	if err := im.q.CustomPatch(c, domain.TablePlatformWallets, selector, update, false); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrInsufficientTreasuryBalance
		}
		c.WithFields(log.Fields{
			"err":    err,
			"amount": amount,
		}).Error("q.CustomPatch failed")
		return err
	}
	return nil
}
