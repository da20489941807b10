package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopmind/shopmind/internal/webserver"
)

// registerChatRoutes registers the chatbot endpoint
func registerChatRoutes() {
	webserver.ApiGET("/chat/ask", askBot)
}

func askBot(c echo.Context) error {
	message := strings.TrimSpace(c.QueryParam("message"))
	if message == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Query parameter 'message' is required", nil)
	}
	answer, err := deps.Chat.Respond(c.Request().Context(), message)
	if err != nil {
		return fail(c, http.StatusBadGateway, "AI_UPSTREAM_ERROR", "Chat response failed", err.Error())
	}
	return c.String(http.StatusOK, answer)
}
