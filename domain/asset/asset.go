package asset

import (
	"unicode/utf8"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/domain"
)

// Type supports future expansion:
// - TypeDigitalNFT: standard NFTs (art, collectibles)
// - TypeTokenizedReal: tokenized real-world assets (real estate, commodities)
type Type string

const (
	TypeDigitalNFT    Type = "digitalNft"
	TypeTokenizedReal Type = "tokenizedReal"
)

func (t Type) IsValid() bool {
	return t == TypeDigitalNFT || t == TypeTokenizedReal
}

// Asset is the listing/ownership record of a tokenized asset. IsListed=true
// implies exactly one open auction references it.
type Asset struct {
	Owner       domain.Address `json:"owner" bson:"owner"`
	AssetType   Type           `json:"assetType" bson:"assetType"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description" bson:"description"`
	Mint        domain.Address `json:"mint" bson:"mint"`
	IsListed    bool           `json:"isListed" bson:"isListed"`
	Account     domain.Address `json:"account" bson:"account"`
	Bump        uint8          `json:"bump" bson:"bump"`
}

func Validate(name, description string, assetType Type) error {
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if !assetType.IsValid() {
		return domain.ErrBadParamInput
	}
	return nil
}

type Patchable struct {
	Owner    *domain.Address `bson:"owner,omitempty"`
	IsListed *bool           `bson:"isListed,omitempty"`
}

type RegisterPayload struct {
	AssetType   Type           `json:"assetType" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Mint        domain.Address `json:"mint" validate:"required"`
}

type Repo interface {
	FindOne(c ctx.Ctx, mint domain.Address) (*Asset, error)
	FindByOwner(c ctx.Ctx, owner domain.Address) ([]Asset, error)
	Create(c ctx.Ctx, asset *Asset) error
	Patch(c ctx.Ctx, mint domain.Address, patchable Patchable) error
}

type Usecase interface {
	Register(c ctx.Ctx, owner domain.Address, payload RegisterPayload) (*Asset, error)
	Get(c ctx.Ctx, mint domain.Address) (*Asset, error)
	ListByOwner(c ctx.Ctx, owner domain.Address) ([]Asset, error)
}
