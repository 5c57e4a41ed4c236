package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/delivery"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/auction"
)

type handler struct {
	auction auction.Usecase
}

// New registers the auction engine endpoints
func New(e *echo.Echo, us auction.Usecase, authMiddleware, addressGuard echo.MiddlewareFunc) {
	h := &handler{auction: us}
	g := e.Group("/auctions")
	g.POST("", h.create, authMiddleware)
	g.GET("", h.search)
	g.GET("/participated/:address", h.listParticipated, addressGuard)
	g.GET("/active/:address", h.listActive, addressGuard)
	g.GET("/:account", h.get)
	g.POST("/:account/bids", h.placeBid, authMiddleware)
	g.POST("/:account/refund", h.claimRefund, authMiddleware)
	g.POST("/:account/end", h.end, authMiddleware)
	g.POST("/:account/cancel", h.cancel, authMiddleware)
}

func (h *handler) create(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	p := auction.CreatePayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.Create(context, seller, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, a)
}

func (h *handler) get(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	account := domain.Address(c.Param("account")).ToLower()

	a, err := h.auction.Get(context, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) search(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	filter := auction.SearchFilter{Limit: 30}
	if seller := c.QueryParam("seller"); seller != "" {
		addr := domain.Address(seller).ToLower()
		filter.Seller = &addr
	}
	if status := c.QueryParam("status"); status != "" {
		s := auction.Status(status)
		filter.Status = &s
	}
	if offset := c.QueryParam("offset"); offset != "" {
		v, err := strconv.Atoi(offset)
		if err != nil || v < 0 {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		filter.Offset = v
	}
	if limit := c.QueryParam("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 1 || v > 100 {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		filter.Limit = v
	}

	as, err := h.auction.Search(context, filter)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, as)
}

type bidPayload struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *handler) placeBid(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	bidder := c.Get("address").(domain.Address)
	account := domain.Address(c.Param("account")).ToLower()

	p := bidPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.PlaceBid(context, bidder, account, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

type refundResp struct {
	Amount uint64 `json:"amount"`
}

func (h *handler) claimRefund(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)
	account := domain.Address(c.Param("account")).ToLower()

	amount, err := h.auction.ClaimPendingRefund(context, caller, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, refundResp{Amount: amount})
}

func (h *handler) end(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)
	account := domain.Address(c.Param("account")).ToLower()

	a, err := h.auction.End(context, caller, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) cancel(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)
	account := domain.Address(c.Param("account")).ToLower()

	if err := h.auction.Cancel(context, caller, account); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) listActive(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	seller := domain.Address(c.Param("address")).ToLower()

	markers, err := h.auction.ListActive(context, seller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, markers)
}

func (h *handler) listParticipated(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	buyer := domain.Address(c.Param("address")).ToLower()

	as, err := h.auction.ListParticipated(context, buyer)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, as)
}
