package restapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopmind/shopmind/internal/catalog"
	"github.com/shopmind/shopmind/internal/chatbot"
	"github.com/shopmind/shopmind/internal/order"
)

// Deps are the services the REST handlers delegate to.
type Deps struct {
	Catalog *catalog.Service
	Orders  *order.Service
	Chat    *chatbot.Responder
}

var deps Deps

// Register wires handler dependencies and registers all routes.
func Register(d Deps) {
	deps = d
	registerProductRoutes()
	registerOrderRoutes()
	registerChatRoutes()
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Code: code, Message: message, Detail: detail})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
