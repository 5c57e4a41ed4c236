package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/database/mongoclient"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/asset"
	"github.com/auctra/goapi/service/query"
)

const searchLimit = 200

type assetMongoRepo struct {
	q query.Mongo
}

func NewAssetRepo(q query.Mongo) asset.Repo {
	return &assetMongoRepo{
		q: q,
	}
}

func (r *assetMongoRepo) FindOne(ctx bCtx.Ctx, mint domain.Address) (*asset.Asset, error) {
	res := &asset.Asset{}
	if err := r.q.FindOne(ctx, domain.TableAssets, bson.M{"mint": mint.ToLower()}, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *assetMongoRepo) FindByOwner(ctx bCtx.Ctx, owner domain.Address) ([]asset.Asset, error) {
	res := []asset.Asset{}
	if err := r.q.Search(ctx, domain.TableAssets, 0, searchLimit, "name", bson.M{"owner": owner.ToLower()}, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"owner": owner,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *assetMongoRepo) Create(ctx bCtx.Ctx, a *asset.Asset) error {
	if err := r.q.Insert(ctx, domain.TableAssets, a); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		ctx.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *assetMongoRepo) Patch(ctx bCtx.Ctx, mint domain.Address, patchable asset.Patchable) error {
	updater, err := makeAssetUpdater(&patchable)
	if err != nil {
		ctx.WithField("err", err).Error("make asset updater failed")
		return err
	}
	if err := r.q.Patch(ctx, domain.TableAssets, bson.M{"mint": mint.ToLower()}, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		ctx.WithFields(log.Fields{
			"err":  err,
			"mint": mint,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

// makeAssetUpdater keeps explicit false for isListed. MakeBsonM drops zero
// values, but clearing the listing flag at settlement must reach the record.
func makeAssetUpdater(patchable *asset.Patchable) (bson.M, error) {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		return nil, err
	}
	if patchable.IsListed != nil {
		updater["isListed"] = *patchable.IsListed
	}
	return updater, nil
}
