package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/delivery"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/asset"
)

type handler struct {
	asset asset.Usecase
}

// New registers the asset registry endpoints
func New(e *echo.Echo, us asset.Usecase, authMiddleware echo.MiddlewareFunc) {
	h := &handler{asset: us}
	g := e.Group("/assets")
	g.POST("", h.register, authMiddleware)
	g.GET("/:mint", h.get)
	g.GET("", h.listByOwner)
}

func (h *handler) register(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := asset.RegisterPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.asset.Register(context, address, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, a)
}

func (h *handler) get(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	mint := domain.Address(c.Param("mint")).ToLower()

	a, err := h.asset.Get(context, mint)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

type listQuery struct {
	Owner string `query:"owner" validate:"required"`
}

func (h *handler) listByOwner(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	q := listQuery{}
	if err := c.Bind(&q); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&q); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	as, err := h.asset.ListByOwner(context, domain.Address(q.Owner).ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, as)
}
