package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/deepaksivamani/virtualgames/internal/config"
	"github.com/deepaksivamani/virtualgames/internal/game"
	"github.com/deepaksivamani/virtualgames/internal/logger"
	"github.com/deepaksivamani/virtualgames/internal/store"
)

// Inbound frame. Payload shape depends on Type.
type clientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createRoomPayload struct {
	Mode     string         `json:"mode"`
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type joinRoomPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type guessPayload struct {
	Text string `json:"text"`
}

type selectWordPayload struct {
	Word string `json:"word"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// joinTimeout bounds how long a join waits on a busy room actor.
const joinTimeout = 5 * time.Second

type Handler struct {
	cfg      config.Config
	registry *game.Registry
	store    *store.Store
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(cfg config.Config, registry *game.Registry, st *store.Store, hub *Hub) *Handler {
	h := &Handler{cfg: cfg, registry: registry, store: st, hub: hub}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return lo.Contains(h.cfg.AllowedOrigins, "*") || lo.Contains(h.cfg.AllowedOrigins, origin)
}

// Router wires the REST surface and the websocket entry point.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/health", h.health)
	router.GET("/api/leaderboard", h.leaderboard)
	router.GET("/ws", h.serveWS)
	return router
}

func (h *Handler) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rooms":  h.registry.RoomCount(),
	})
}

func (h *Handler) leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	entries, err := h.store.TopPlayers(ctx.Request.Context(), limit)
	if err != nil {
		logger.Criticalf("Leaderboard query failed: %v", err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "leaderboard-unavailable"})
		return
	}
	if entries == nil {
		entries = []store.LeaderboardEntry{}
	}
	ctx.JSON(http.StatusOK, gin.H{"players": entries})
}

// serveWS upgrades the connection and runs its read loop until the
// client goes away. Each connection gets a fresh id; rebinding a name
// to a new id is the game layer's job.
func (h *Handler) serveWS(ctx *gin.Context) {
	socket, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warningf("WS upgrade failed for %s: %v", ctx.ClientIP(), err)
		return
	}

	conn := NewConn(uuid.NewString(), socket)
	h.hub.Register(conn)
	go conn.WritePump()

	logger.Debugf("Connection %s opened from %s", conn.ID(), ctx.ClientIP())
	h.readLoop(conn)

	h.hub.Unregister(conn.ID())
	h.registry.Disconnect(conn.ID())
	conn.Close("")
	logger.Debugf("Connection %s closed", conn.ID())
}

func (h *Handler) readLoop(conn *Conn) {
	// Guesses and chat share one limiter; strokes are exempt so a
	// drawer's hand does not stutter.
	limiter := rate.NewLimiter(rate.Limit(h.cfg.MessageRate), h.cfg.MessageBurst)

	for {
		data, err := conn.Read()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debugf("Connection %s sent malformed frame", conn.ID())
			continue
		}
		h.handleMessage(conn, limiter, msg)
	}
}

func (h *Handler) handleMessage(conn *Conn, limiter *rate.Limiter, msg clientMessage) {
	connID := conn.ID()

	switch msg.Type {
	case "create_room":
		var p createRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || strings.TrimSpace(p.Name) == "" {
			h.sendError(connID, "A player name is required")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), joinTimeout)
		outcome, err := h.registry.CreateRoom(ctx, game.ParseMode(p.Mode), p.Metadata, strings.TrimSpace(p.Name), connID)
		cancel()
		if err != nil {
			h.sendError(connID, "Could not create room")
			return
		}
		h.finishJoin(connID, outcome)

	case "join_room":
		var p joinRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || strings.TrimSpace(p.Name) == "" {
			h.sendError(connID, "A player name is required")
			return
		}
		// Subscribe first so broadcasts fired during the join are not
		// lost; rolled back if the join fails.
		h.hub.Subscribe(connID, strings.ToUpper(strings.TrimSpace(p.Code)))
		ctx, cancel := context.WithTimeout(context.Background(), joinTimeout)
		outcome, err := h.registry.JoinRoom(ctx, p.Code, strings.TrimSpace(p.Name), connID)
		cancel()
		if err != nil {
			h.hub.Unsubscribe(connID)
			h.sendError(connID, "Room not found")
			return
		}
		h.finishJoin(connID, outcome)

	case "start_game":
		var settings game.Settings
		if msg.Payload != nil {
			if err := json.Unmarshal(msg.Payload, &settings); err != nil {
				h.sendError(connID, "Invalid game settings")
				return
			}
		}
		h.registry.StartGame(connID, settings)

	case "restart_game":
		h.registry.RestartGame(connID)

	case "submit_guess":
		if !limiter.Allow() {
			logger.Debugf("Connection %s rate limited", connID)
			return
		}
		var p guessPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || strings.TrimSpace(p.Text) == "" {
			return
		}
		h.registry.SubmitGuess(connID, p.Text)

	case "select_word":
		var p selectWordPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		h.registry.SelectWord(connID, p.Word)

	case "draw_stroke":
		h.registry.DrawStroke(connID, msg.Payload)

	default:
		logger.Debugf("Connection %s sent unknown message type %q", connID, msg.Type)
	}
}

// finishJoin subscribes the connection to its room, evicts the socket
// it superseded on a reconnect, and replies with the room snapshot.
func (h *Handler) finishJoin(connID string, outcome game.JoinOutcome) {
	h.hub.Subscribe(connID, outcome.Snapshot.Code)
	if outcome.ReplacedConnID != "" {
		h.hub.Evict(outcome.ReplacedConnID, "superseded")
	}
	h.hub.ToConn(connID, "room_joined", outcome.Snapshot)
}

func (h *Handler) sendError(connID, message string) {
	h.hub.ToConn(connID, "error_message", errorPayload{Message: message})
}
