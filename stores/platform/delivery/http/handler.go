package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/delivery"
	"github.com/auctra/goapi/domain"
)

type handler struct {
	platform domain.PlatformUsecase
}

// New registers the platform treasury endpoints
func New(e *echo.Echo, us domain.PlatformUsecase, authMiddleware, adminMiddleware echo.MiddlewareFunc) {
	h := &handler{platform: us}
	g := e.Group("/platform")
	g.GET("/wallet", h.get)
	g.POST("/withdraw", h.withdraw, authMiddleware, adminMiddleware)
	g.POST("/deposits", h.deposit, authMiddleware, adminMiddleware)
	g.POST("/assets", h.seedAsset, authMiddleware, adminMiddleware)
}

func (h *handler) get(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	wallet, err := h.platform.Get(context)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, wallet)
}

type withdrawPayload struct {
	Amount      uint64         `json:"amount" validate:"required,gt=0"`
	Destination domain.Address `json:"destination" validate:"required"`
}

func (h *handler) withdraw(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := withdrawPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.platform.WithdrawFees(context, caller, p.Amount, p.Destination); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type depositPayload struct {
	Account domain.Address `json:"account" validate:"required"`
	Amount  uint64         `json:"amount" validate:"required,gt=0"`
}

func (h *handler) deposit(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := depositPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.platform.Deposit(context, caller, p.Account, p.Amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

type seedAssetPayload struct {
	Mint   domain.Address `json:"mint" validate:"required"`
	Holder domain.Address `json:"holder" validate:"required"`
}

func (h *handler) seedAsset(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := seedAssetPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.platform.SeedAsset(context, caller, p.Mint, p.Holder); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}
