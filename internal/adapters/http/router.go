package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/ctinotify/internal/app"
	"github.com/dkeye/ctinotify/internal/config"
	"github.com/dkeye/ctinotify/internal/domain"
)

const (
	requestIDHeader = "X-Request-Id"
	pbxSecretHeader = "X-Pbx-Secret"
)

type Authenticator interface {
	Authenticate(username, password string) error
}

type TokenIssuer interface {
	Issue(ctx context.Context, username string) (string, error)
	Revoke(ctx context.Context, username, token string)
}

type Publisher interface {
	Publish(ev domain.RingingEvent) bool
}

// SignalHandler serves upgraded client connections.
type SignalHandler interface {
	HandleSignal(ctx context.Context, c *gin.Context)
}

type Deps struct {
	Registry *app.Registry
	Users    Authenticator
	Tokens   TokenIssuer
	Events   Publisher
	Signal   SignalHandler
	// Limiter throttles failed password logins per client IP; may be nil.
	Limiter *app.LoginLimiter
}

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// SecretMiddleware guards PBX-facing routes with a shared secret header.
// An empty secret disables the check.
func SecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret != "" && c.GetHeader(pbxSecretHeader) != secret {
			log.Warn().Str("module", "adapters.http").Str("path", c.FullPath()).Str("ip", c.ClientIP()).Msg("bad pbx secret")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad pbx secret"})
			return
		}
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	h := &handlers{deps: deps}

	r.GET("/healthz", h.health)
	r.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("rid", c.GetString("request_id")).Msg("ws endpoint hit")
		deps.Signal.HandleSignal(ctx, c)
	})

	api := r.Group("/api")
	api.POST("/authe/login", h.login)
	api.POST("/authe/logout", h.logout)

	pbxAPI := api.Group("", SecretMiddleware(cfg.PBX.Secret))
	pbxAPI.GET("/sessions", h.sessions)
	pbxAPI.POST("/pbx/ringing", h.ringing)

	log.Info().Str("module", "adapters.http").Bool("pbx_secret", cfg.PBX.Secret != "").Msg("router setup")
	return r
}

type handlers struct {
	deps Deps
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.deps.Registry.Count()})
}

type sessionView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Transport string `json:"transport"`
}

func (h *handlers) sessions(c *gin.Context) {
	out := make([]sessionView, 0, h.deps.Registry.Count())
	for _, s := range h.deps.Registry.Snapshot() {
		out = append(out, sessionView{
			ID:        string(s.ID()),
			Username:  s.Username(),
			Transport: string(s.Conn().Transport()),
		})
	}
	c.JSON(http.StatusOK, out)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.deps.Limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many failed logins"})
		return
	}
	if err := h.deps.Users.Authenticate(req.Username, req.Password); err != nil {
		h.deps.Limiter.Fail(c.ClientIP())
		log.Warn().Str("module", "adapters.http").Str("username", req.Username).Err(err).Msg("password login refused")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := h.deps.Tokens.Issue(c.Request.Context(), req.Username)
	if err != nil {
		log.Error().Str("module", "adapters.http").Err(err).Msg("issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": req.Username, "token": token})
}

type logoutRequest struct {
	Username string `json:"username" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

func (h *handlers) logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.deps.Tokens.Revoke(c.Request.Context(), req.Username, req.Token)
	c.Status(http.StatusNoContent)
}

func (h *handlers) ringing(c *gin.Context) {
	var ev domain.RingingEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ev.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.deps.Events.Publish(ev) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event queue full"})
		return
	}
	c.Status(http.StatusAccepted)
}
