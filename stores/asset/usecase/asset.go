package usecase

import (
	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/asset"
	"github.com/auctra/goapi/domain/dealer"
	"github.com/auctra/goapi/domain/keys"
)

type assetUsecase struct {
	repo       asset.Repo
	dealerRepo dealer.Repo
	custody    domain.TokenCustody
}

func New(repo asset.Repo, dealerRepo dealer.Repo, custody domain.TokenCustody) asset.Usecase {
	return &assetUsecase{
		repo:       repo,
		dealerRepo: dealerRepo,
		custody:    custody,
	}
}

func (im *assetUsecase) Register(c ctx.Ctx, owner domain.Address, payload asset.RegisterPayload) (*asset.Asset, error) {
	if err := asset.Validate(payload.Name, payload.Description, payload.AssetType); err != nil {
		return nil, err
	}

	if _, err := im.dealerRepo.FindOne(c, owner); err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrDealerNotFound
		}
		return nil, err
	}

	mint := payload.Mint.ToLower()

	holder, err := im.custody.AssetHolder(c, mint)
	if err != nil {
		return nil, err
	}
	if !holder.Equals(owner) {
		return nil, domain.ErrInvalidMint
	}

	if _, err := im.repo.FindOne(c, mint); err == nil {
		return nil, domain.ErrConflict
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	account, bump, err := keys.Derive(keys.KindAsset, string(mint))
	if err != nil {
		c.WithField("err", err).Error("keys.Derive failed")
		return nil, err
	}

	a := &asset.Asset{
		Owner:       owner.ToLower(),
		AssetType:   payload.AssetType,
		Name:        payload.Name,
		Description: payload.Description,
		Mint:        mint,
		IsListed:    false,
		Account:     account,
		Bump:        bump,
	}
	if err := im.repo.Create(c, a); err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"mint": mint,
		}).Error("repo.Create failed")
		return nil, err
	}
	return a, nil
}

func (im *assetUsecase) Get(c ctx.Ctx, mint domain.Address) (*asset.Asset, error) {
	a, err := im.repo.FindOne(c, mint)
	if err != nil {
		return nil, err
	}
	if !keys.Verify(a.Account, a.Bump, keys.KindAsset, string(a.Mint)) {
		c.WithField("mint", mint).Error("asset record failed canonical proof")
		return nil, domain.ErrInternalServerError
	}
	return a, nil
}

func (im *assetUsecase) ListByOwner(c ctx.Ctx, owner domain.Address) ([]asset.Asset, error) {
	return im.repo.FindByOwner(c, owner)
}
