package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/asset"
	mAsset "github.com/auctra/goapi/domain/asset/mocks"
	"github.com/auctra/goapi/domain/dealer"
	mDealer "github.com/auctra/goapi/domain/dealer/mocks"
	"github.com/auctra/goapi/domain/keys"
	mDomain "github.com/auctra/goapi/domain/mocks"
)

var (
	testOwner = domain.Address("0xabc0000000000000000000000000000000000001")
	testMint  = domain.Address("0xmint000000000000000000000000000000000001")
)

func validPayload() asset.RegisterPayload {
	return asset.RegisterPayload{
		AssetType:   asset.TypeDigitalNFT,
		Name:        "genesis piece",
		Description: "first of the series",
		Mint:        testMint,
	}
}

func TestRegisterAsset(t *testing.T) {
	c := ctx.Background()

	repo := &mAsset.Repo{}
	dealerRepo := &mDealer.Repo{}
	custody := &mDomain.TokenCustody{}

	dealerRepo.On("FindOne", mock.Anything, testOwner).Return(&dealer.Dealer{Authority: testOwner}, nil)
	custody.On("AssetHolder", mock.Anything, testMint).Return(testOwner, nil)
	repo.On("FindOne", mock.Anything, testMint).Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	u := New(repo, dealerRepo, custody)
	a, err := u.Register(c, testOwner, validPayload())
	assert.NoError(t, err)
	assert.Equal(t, testOwner, a.Owner)
	assert.Equal(t, testMint, a.Mint)
	assert.False(t, a.IsListed)
	assert.True(t, keys.Verify(a.Account, a.Bump, keys.KindAsset, string(a.Mint)))
	repo.AssertExpectations(t)
}

func TestRegisterAssetRequiresDealer(t *testing.T) {
	c := ctx.Background()

	repo := &mAsset.Repo{}
	dealerRepo := &mDealer.Repo{}
	custody := &mDomain.TokenCustody{}

	dealerRepo.On("FindOne", mock.Anything, testOwner).Return(nil, domain.ErrNotFound)

	u := New(repo, dealerRepo, custody)
	_, err := u.Register(c, testOwner, validPayload())
	assert.Equal(t, domain.ErrDealerNotFound, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterAssetNotHolder(t *testing.T) {
	c := ctx.Background()

	repo := &mAsset.Repo{}
	dealerRepo := &mDealer.Repo{}
	custody := &mDomain.TokenCustody{}

	dealerRepo.On("FindOne", mock.Anything, testOwner).Return(&dealer.Dealer{Authority: testOwner}, nil)
	custody.On("AssetHolder", mock.Anything, testMint).Return(domain.Address("0xabc0000000000000000000000000000000000002"), nil)

	u := New(repo, dealerRepo, custody)
	_, err := u.Register(c, testOwner, validPayload())
	assert.Equal(t, domain.ErrInvalidMint, err)
}

func TestRegisterAssetDuplicateMint(t *testing.T) {
	c := ctx.Background()

	repo := &mAsset.Repo{}
	dealerRepo := &mDealer.Repo{}
	custody := &mDomain.TokenCustody{}

	dealerRepo.On("FindOne", mock.Anything, testOwner).Return(&dealer.Dealer{Authority: testOwner}, nil)
	custody.On("AssetHolder", mock.Anything, testMint).Return(testOwner, nil)
	repo.On("FindOne", mock.Anything, testMint).Return(&asset.Asset{Mint: testMint}, nil)

	u := New(repo, dealerRepo, custody)
	_, err := u.Register(c, testOwner, validPayload())
	assert.Equal(t, domain.ErrConflict, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterAssetBadType(t *testing.T) {
	c := ctx.Background()

	u := New(&mAsset.Repo{}, &mDealer.Repo{}, &mDomain.TokenCustody{})
	p := validPayload()
	p.AssetType = "bond"
	_, err := u.Register(c, testOwner, p)
	assert.Equal(t, domain.ErrBadParamInput, err)
}
