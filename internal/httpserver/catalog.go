package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/lattzaw/group_order/internal/repo"
	"github.com/lattzaw/group_order/internal/service/search"
	"github.com/lattzaw/group_order/internal/util"
)

// CatalogHandler serves the reference data reads: products, shops and the
// product search index.
type CatalogHandler struct {
	Repo  *repo.GormRepo
	ES    *elasticsearch.Client
	Index string
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Repo.GetProduct(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	products, total, err := h.Repo.ListProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": products,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHandler) GetShop(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	shop, err := h.Repo.GetShop(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "shop not found")
	}
	return c.JSON(http.StatusOK, shop)
}

func (h *CatalogHandler) ListShops(c echo.Context) error {
	shops, err := h.Repo.ListShops(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, shops)
}

func (h *CatalogHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
