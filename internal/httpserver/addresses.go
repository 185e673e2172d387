package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/service"
	"github.com/avdeenko/aromashop/internal/token"
	"github.com/avdeenko/aromashop/internal/transport"
)

type AddressHandler struct {
	Svc *service.AddressService
}

func addressFromRequest(req transport.AddressRequest) models.UserAddress {
	return models.UserAddress{
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		City:       req.City,
		Street:     req.Street,
		Building:   req.Building,
		Apartment:  req.Apartment,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
}

func (h *AddressHandler) List(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	addrs, err := h.Svc.List(c.Request().Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, addrs)
}

func (h *AddressHandler) Create(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr := addressFromRequest(req)
	addr.UserID = userID
	if err := h.Svc.Create(c.Request().Context(), &addr); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, addr)
}

func (h *AddressHandler) Update(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	addressID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr := addressFromRequest(req)
	addr.ID = addressID
	if err := h.Svc.Update(c.Request().Context(), userID, &addr); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	addressID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), userID, addressID); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	addressID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.SetDefault(c.Request().Context(), userID, addressID); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
