package usecase

import (
	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/base/ptr"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/dealer"
	"github.com/auctra/goapi/domain/keys"
	"github.com/auctra/goapi/service/cache"
)

type dealerUsecase struct {
	repo dealer.Repo

	// profileCache fronts the read-heavy public profile lookups; writes
	// invalidate by authority
	profileCache cache.Service
}

func New(repo dealer.Repo, profileCache cache.Service) dealer.Usecase {
	return &dealerUsecase{
		repo:         repo,
		profileCache: profileCache,
	}
}

func (im *dealerUsecase) Register(c ctx.Ctx, authority domain.Address, description string) (*dealer.Dealer, error) {
	if err := dealer.ValidateDescription(description); err != nil {
		return nil, err
	}

	if _, err := im.repo.FindOne(c, authority); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	account, bump, err := keys.Derive(keys.KindDealer, string(authority))
	if err != nil {
		c.WithField("err", err).Error("keys.Derive failed")
		return nil, err
	}

	d := &dealer.Dealer{
		Authority:   authority.ToLower(),
		Description: description,
		Account:     account,
		Bump:        bump,
	}
	if err := im.repo.Create(c, d); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"authority": authority,
		}).Error("repo.Create failed")
		return nil, err
	}
	if err := im.profileCache.Del(c, string(d.Authority)); err != nil {
		c.WithField("err", err).Warn("profile cache invalidation failed")
	}
	return d, nil
}

func (im *dealerUsecase) UpdateDescription(c ctx.Ctx, caller, authority domain.Address, description string) error {
	if !caller.Equals(authority) {
		return domain.ErrUnauthorized
	}
	if err := dealer.ValidateDescription(description); err != nil {
		return err
	}

	d, err := im.repo.FindOne(c, authority)
	if err != nil {
		return err
	}
	if !d.Authority.Equals(caller) {
		return domain.ErrUnauthorized
	}

	if err := im.repo.Patch(c, authority, dealer.Patchable{Description: ptr.String(description)}); err != nil {
		return err
	}
	if err := im.profileCache.Del(c, string(authority.ToLower())); err != nil {
		c.WithField("err", err).Warn("profile cache invalidation failed")
	}
	return nil
}

func (im *dealerUsecase) Get(c ctx.Ctx, authority domain.Address) (*dealer.Dealer, error) {
	d := &dealer.Dealer{}
	err := im.profileCache.GetByFunc(c, string(authority.ToLower()), d, func() (interface{}, error) {
		return im.repo.FindOne(c, authority)
	})
	if err != nil {
		return nil, err
	}
	if !keys.Verify(d.Account, d.Bump, keys.KindDealer, string(d.Authority)) {
		c.WithField("authority", authority).Error("dealer record failed canonical proof")
		return nil, domain.ErrInternalServerError
	}
	return d, nil
}
