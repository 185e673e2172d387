package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/repo"
	"github.com/avdeenko/aromashop/internal/service"
	"github.com/avdeenko/aromashop/internal/transport"
	"github.com/avdeenko/aromashop/internal/util"
)

type CatalogHandler struct {
	Svc *service.CatalogService
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.Svc.ListCategories(c.Request().Context(), true)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{ActiveOnly: true}
	if raw := c.QueryParam("category_id"); raw != "" {
		catID, err := strconv.Atoi(raw)
		if err != nil || catID <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		filter.CategoryID = uint(catID)
	}

	products, total, err := h.Svc.ListProducts(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, transport.NewPage(products, page, limit, total))
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) ListShippingMethods(c echo.Context) error {
	methods, err := h.Svc.ListShippingMethods(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, methods)
}

// Admin surface below.

func (h *CatalogHandler) AdminListCategories(c echo.Context) error {
	cats, err := h.Svc.ListCategories(c.Request().Context(), false)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if err := h.Svc.CreateCategory(c.Request().Context(), &cat); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    true,
	}
	cat.ID = id
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if err := h.Svc.UpdateCategory(c.Request().Context(), &cat); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{}
	if raw := c.QueryParam("category_id"); raw != "" {
		catID, err := strconv.Atoi(raw)
		if err != nil || catID <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		filter.CategoryID = uint(catID)
	}

	products, total, err := h.Svc.ListProducts(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, transport.NewPage(products, page, limit, total))
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p := models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    true,
		TaxRateBP:   req.TaxRateBP,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.Svc.CreateProduct(c.Request().Context(), &p); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p := models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    true,
		TaxRateBP:   req.TaxRateBP,
	}
	p.ID = id
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.Svc.UpdateProduct(c.Request().Context(), &p); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) CreateVariant(c echo.Context) error {
	var req transport.VariantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	v := models.ProductVariant{
		ProductID:       req.ProductID,
		Name:            req.Name,
		SKU:             req.SKU,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		StockCount:      req.StockCount,
		IsActive:        true,
		Aroma:           req.Aroma,
		SizeGrams:       req.SizeGrams,
		Servings:        req.Servings,
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := h.Svc.CreateVariant(c.Request().Context(), &v); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *CatalogHandler) UpdateVariant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.VariantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	existing, err := h.Svc.GetVariant(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}

	v := models.ProductVariant{
		ProductID:       existing.ProductID,
		Name:            req.Name,
		SKU:             req.SKU,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		StockCount:      req.StockCount,
		IsActive:        existing.IsActive,
		Aroma:           req.Aroma,
		SizeGrams:       req.SizeGrams,
		Servings:        req.Servings,
	}
	v.ID = id
	v.CreatedAt = existing.CreatedAt
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := h.Svc.UpdateVariant(c.Request().Context(), &v); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CatalogHandler) DeleteVariant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteVariant(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto accepts a multipart file field named "photo".
func (h *CatalogHandler) UploadPhoto(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read photo")
	}
	defer src.Close()

	isMain := c.FormValue("is_main") == "true"
	contentType := fh.Header.Get("Content-Type")

	photo, err := h.Svc.UploadPhoto(c.Request().Context(), productID, fh.Filename, src, fh.Size, contentType, isMain)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, photo)
}

func (h *CatalogHandler) DeletePhoto(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeletePhoto(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) CreateShippingMethod(c echo.Context) error {
	var req transport.ShippingMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	m := models.ShippingMethod{
		Code:     req.Code,
		Name:     req.Name,
		Price:    req.Price,
		IsActive: true,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := h.Svc.CreateShippingMethod(c.Request().Context(), &m); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *CatalogHandler) UpdateShippingMethod(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transport.ShippingMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	m := models.ShippingMethod{
		Code:     req.Code,
		Name:     req.Name,
		Price:    req.Price,
		IsActive: true,
	}
	m.ID = id
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := h.Svc.UpdateShippingMethod(c.Request().Context(), &m); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHandler) DeleteShippingMethod(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteShippingMethod(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
