package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/delivery"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/dealer"
)

type handler struct {
	dealer dealer.Usecase
}

// New registers the dealer registry endpoints
func New(e *echo.Echo, us dealer.Usecase, authMiddleware, addressGuard echo.MiddlewareFunc) {
	h := &handler{dealer: us}
	g := e.Group("/dealer")
	g.POST("", h.register, authMiddleware)
	g.PATCH("", h.updateDescription, authMiddleware)
	g.GET("/:address", h.get, addressGuard)
}

type registerPayload struct {
	Description string `json:"description"`
}

func (h *handler) register(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := registerPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	d, err := h.dealer.Register(context, address, p.Description)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, d)
}

func (h *handler) updateDescription(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := registerPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.dealer.UpdateDescription(context, address, address, p.Description); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) get(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("address")).ToLower()

	d, err := h.dealer.Get(context, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, d)
}
