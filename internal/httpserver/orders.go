package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/service"
	"github.com/avdeenko/aromashop/internal/token"
	"github.com/avdeenko/aromashop/internal/transport"
	"github.com/avdeenko/aromashop/internal/util"
)

type OrderHandler struct {
	Checkout *service.CheckoutService
	Orders   *service.OrderService
}

// Create converts the caller's cart into an order.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ShippingAddressID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "shipping_address_id is required")
	}

	order, err := h.Checkout.Checkout(c.Request().Context(), userID, service.CheckoutRequest{
		ShippingAddressID:  req.ShippingAddressID,
		PaymentMethod:      req.PaymentMethod,
		ShippingMethodCode: req.ShippingMethodCode,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	orders, total, err := h.Orders.ListOrdersForUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, transport.NewPage(orders, page, limit, total))
}

func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Orders.GetOrderForUser(c.Request().Context(), uint(orderID), userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.CancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.Cancel(c.Request().Context(), uint(orderID), userID, req.CancelReason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// AdminList returns all orders, optionally filtered by status.
func (h *OrderHandler) AdminList(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	status := models.OrderStatus(c.QueryParam("status"))

	orders, total, err := h.Orders.ListOrders(c.Request().Context(), status, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, transport.NewPage(orders, page, limit, total))
}

func (h *OrderHandler) AdminGet(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Orders.GetOrder(c.Request().Context(), uint(orderID))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// AdminUpdateStatus moves an order one step through the status graph.
func (h *OrderHandler) AdminUpdateStatus(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.SetStatus(c.Request().Context(), uint(orderID), req.Status, req.TrackingNumber, req.CancelReason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
