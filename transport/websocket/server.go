package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
)

const (
	sessionCookieName = "user_session"
	sessionCookieTTL  = 30 * 24 * time.Hour
	shutdownTimeout   = 5 * time.Second
)

type settingsRepo interface {
	CreateOrUpdate(ctx context.Context, playerID string, settings entity.Settings) error
	GetByID(ctx context.Context, playerID string) (entity.Settings, error)
}

type botService interface {
	ChooseCell(board entity.Board, botMark entity.Mark) (int, bool)
}

// Deps - collaborators shared by every connection.
type Deps struct {
	SettingsRepo settingsRepo
	Bot          botService
	Scheduler    pkg.Scheduler
	BotDelay     time.Duration
	Defaults     entity.Settings
}

type handlerFunc func(ctx context.Context, manager *usecase.GameManager, client *client, message *Message) error

type Server struct {
	logger *slog.Logger
	deps   Deps

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, deps Deps) *Server {
	server := &Server{
		logger: logger.With("component", "wsServer"),
		deps:   deps,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the board is served from a separate origin in development
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameStart] = server.handleStart
	server.handlers[actionGameReset] = server.handleReset
	server.handlers[actionGameCell] = server.handleCell
	server.handlers[actionSettingsSymbol] = server.handleToggleSymbol
	server.handlers[actionSettingsOpponent] = server.handleToggleOpponent

	return server
}

// Router - the /ws route.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", that.upgradeToWebSocket)

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves one game manager on it.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	cookie := that.sessionCookie(req)

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		// the upgrader has already replied with an http error
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	playerID := cookie.Value
	wsClient := newClient(that.logger, conn, playerID)

	session := usecase.NewGameSession(
		that.logger, pkg.GenerateGameID(), that.deps.Bot, wsClient, that.deps.Scheduler, that.deps.BotDelay,
	)
	manager := usecase.NewGameManager(that.logger, playerID, session, that.deps.SettingsRepo, wsClient, that.deps.Defaults)

	defer manager.Close()

	log.Info("WebSocket connection established", "playerID", playerID)

	if err = that.handleMessages(req.Context(), manager, wsClient); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, manager *usecase.GameManager, client *client) error {
	log := that.logger.With("method", "handleMessages", "playerID", client.playerID)

	for {
		_, reqBody, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			that.reply(log, client.sendErrorResponse("", "invalid message"))
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			that.reply(log, client.sendErrorResponse(message.Action, "unknown action"))
			continue
		}

		if err = handler(ctx, manager, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) reply(log *slog.Logger, err error) {
	if err != nil {
		log.Error("failed to send response", "error", err)
	}
}

// sessionCookie - the player's user_session cookie, or a fresh one.
func (that *Server) sessionCookie(req *http.Request) *http.Cookie {
	log := that.logger.With("method", "sessionCookie")

	if cookie, err := req.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		log.Debug("session cookie found", "cookie", cookie.Value)
		return &http.Cookie{
			Name:     sessionCookieName,
			Value:    cookie.Value,
			Expires:  time.Now().Add(sessionCookieTTL),
			Path:     "/",
			HttpOnly: true,
		}
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    pkg.GenerateNewSessionID(),
		Expires:  time.Now().Add(sessionCookieTTL),
		Path:     "/",
		HttpOnly: true,
	}
	log.Info("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie
}
