package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/database/mongoclient"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/dealer"
	"github.com/auctra/goapi/service/query"
)

type dealerMongoRepo struct {
	q query.Mongo
}

func NewDealerRepo(q query.Mongo) dealer.Repo {
	return &dealerMongoRepo{
		q: q,
	}
}

func (r *dealerMongoRepo) FindOne(ctx bCtx.Ctx, authority domain.Address) (*dealer.Dealer, error) {
	res := &dealer.Dealer{}
	if err := r.q.FindOne(ctx, domain.TableDealers, bson.M{"authority": authority.ToLower()}, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *dealerMongoRepo) Create(ctx bCtx.Ctx, d *dealer.Dealer) error {
	if err := r.q.Insert(ctx, domain.TableDealers, d); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrAlreadyRegistered
		}
		ctx.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *dealerMongoRepo) Patch(ctx bCtx.Ctx, authority domain.Address, patchable dealer.Patchable) error {
	updater, err := mongoclient.MakeBsonM(&patchable)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := r.q.Patch(ctx, domain.TableDealers, bson.M{"authority": authority.ToLower()}, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		ctx.WithFields(log.Fields{
			"err":       err,
			"authority": authority,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}
