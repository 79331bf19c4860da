package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/basciYusuf/e-commerce/internal/logging"
	"github.com/basciYusuf/e-commerce/internal/search"
	"github.com/basciYusuf/e-commerce/internal/transport"
	"github.com/basciYusuf/e-commerce/internal/util"
)

type SearchHTTP struct {
	Client *search.Client
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q must not be empty")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	from, size := util.Calculate(page, limit)

	total, products, err := h.Client.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search products")
	}

	return c.JSON(http.StatusOK, transport.ProductPage{Data: products, Total: total})
}
