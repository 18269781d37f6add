package server

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordduel-go/internal/api"
	"github.com/mcoot/wordduel-go/internal/factory"
	"github.com/mcoot/wordduel-go/internal/middleware"
	"github.com/mcoot/wordduel-go/internal/web"
)

// NewHandler combines the JSON API, the WebSocket game endpoint and the
// status pages into one handler
func NewHandler(app *factory.App, logger *slog.Logger) http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		LobbyController:   app.LobbyController,
		DictionaryService: app.DictionaryService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		LobbyController: app.LobbyController,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/ws", middleware.Logging(logger.With(slog.String("component", "ws")))(app.WSServer))
	mux.Handle("/", webRouter)

	return mux
}
