package restapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmind/shopmind/internal/domain"
	"github.com/shopmind/shopmind/internal/order"
	"github.com/shopmind/shopmind/internal/store"
	"github.com/shopmind/shopmind/internal/webserver"
)

// registerOrderRoutes registers order placement and listing endpoints
func registerOrderRoutes() {
	webserver.ApiPOST("/orders/place", placeOrder)
	webserver.ApiGET("/orders", listOrders)
}

func placeOrder(c echo.Context) error {
	var req domain.OrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order request", err.Error())
	}

	resp, err := deps.Orders.PlaceOrder(c.Request().Context(), &req)
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Referenced product does not exist", nil)
	case errors.Is(err, order.ErrEmptyOrder):
		return fail(c, http.StatusBadRequest, "EMPTY_ORDER", "Order must contain at least one item", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to place order", err.Error())
	}
	return created(c, resp)
}

func listOrders(c echo.Context) error {
	responses, err := deps.Orders.ListOrders(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return ok(c, responses)
}
