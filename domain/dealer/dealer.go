package dealer

import (
	"unicode/utf8"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/domain"
)

// Dealer is a registered participant profile, required before listing or
// bidding. One per authority.
type Dealer struct {
	Authority   domain.Address `json:"authority" bson:"authority"`
	Description string         `json:"description" bson:"description"`
	Account     domain.Address `json:"account" bson:"account"`
	Bump        uint8          `json:"bump" bson:"bump"`
}

func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	return nil
}

type Patchable struct {
	Description *string `bson:"description,omitempty"`
}

type Repo interface {
	FindOne(c ctx.Ctx, authority domain.Address) (*Dealer, error)
	Create(c ctx.Ctx, dealer *Dealer) error
	Patch(c ctx.Ctx, authority domain.Address, patchable Patchable) error
}

type Usecase interface {
	Register(c ctx.Ctx, authority domain.Address, description string) (*Dealer, error)
	UpdateDescription(c ctx.Ctx, caller, authority domain.Address, description string) error
	Get(c ctx.Ctx, authority domain.Address) (*Dealer, error)
}
