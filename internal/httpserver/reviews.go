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

type ReviewHandler struct {
	Svc *service.ReviewService
}

func (h *ReviewHandler) ListForProduct(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	reviews, total, err := h.Svc.ListForProduct(c.Request().Context(), productID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, transport.NewPage(reviews, page, limit, total))
}

func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review := models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.Svc.Create(c.Request().Context(), &review); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	isAdmin := token.IsAdmin(c)
	userID, err := token.UserID(c)
	if err != nil && !isAdmin {
		return err
	}

	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), userID, reviewID, isAdmin); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
