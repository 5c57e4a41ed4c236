package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/delivery"
	"github.com/auctra/goapi/domain"
)

type authHandler struct {
	auth               domain.AuthUsecase
	signingMsgTemplate string
}

func New(e *echo.Echo, auth domain.AuthUsecase, template string) {
	h := &authHandler{
		auth:               auth,
		signingMsgTemplate: template,
	}
	g := e.Group("/auth")
	g.GET("/nonce/:address", h.nonce)
	g.POST("/sign", h.sign)
	g.GET("/signingMsgTemplate", h.getSigningMsgTemplate)
}

func (h *authHandler) nonce(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("address")).ToLower()

	nonce, err := h.auth.GenerateNonce(context, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nonce)
}

type signPayload struct {
	Address   domain.Address `json:"address" validate:"required"`
	Signature string         `json:"signature" validate:"required"`
}

func (h *authHandler) sign(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	p := signPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.auth.SignToken(context, p.Address, p.Signature)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}

func (h *authHandler) getSigningMsgTemplate(c echo.Context) error {
	res := struct {
		Msg string `json:"template"`
	}{
		Msg: h.signingMsgTemplate,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
