package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/adapters/signal"
	"github.com/dkeye/Waveroom/internal/app"
	"github.com/dkeye/Waveroom/internal/config"
	"github.com/dkeye/Waveroom/internal/core"
	"github.com/dkeye/Waveroom/internal/resolver"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware gives every browser a stable token in the "ct"
// cookie; the ws controller uses it as the session id.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// Deps bundles everything the router hands out to handlers.
type Deps struct {
	Directory *core.Directory
	History   *core.History
	Gateway   *app.Gateway
	Resolver  *resolver.Client
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

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("WaveroomSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	rooms := &RoomHandlers{Directory: deps.Directory}
	api.POST("/rooms", rooms.Create)
	api.GET("/rooms/:id", rooms.Get)
	api.GET("/rooms/:id/state", rooms.GetState)
	api.PATCH("/rooms/:id/state", rooms.PatchState)
	api.POST("/rooms/:id/track", rooms.SetTrack)
	api.DELETE("/rooms/:id", rooms.Delete)

	chat := &ChatHandlers{History: deps.History}
	api.GET("/chat/:room", chat.GetHistory)

	sc := &SoundcloudHandlers{Client: deps.Resolver}
	api.GET("/soundcloud/search", sc.Search)
	api.GET("/soundcloud/playlists/:id/tracks", sc.PlaylistTracks)

	api.GET("/ws", func(c *gin.Context) {
		ctrl := signal.NewWSController(deps.Gateway, cfg.ReadLimit, cfg.PingPeriod)
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws endpoint hit")
		ctrl.HandleSocket(ctx, c)
	})

	return r
}
