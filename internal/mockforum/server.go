package mockforum

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/chanforum/internal/logger"
)

// Options configure the mock backend.
type Options struct {
	Channels []Channel     // defaults to SeedChannels
	Token    string        // required bearer token when set
	Delay    time.Duration // added before every API response
}

type createRequest struct {
	ChannelID string `json:"channel_id" binding:"required"`
}

// New returns a gin engine serving the forum API.
func New(opts Options) *gin.Engine {
	if opts.Channels == nil {
		opts.Channels = SeedChannels()
	}
	s := newStore(opts.Channels)

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", auth(opts.Token), delay(opts.Delay))
	registerAPIRoutes(api, s)
	return r
}

func registerAPIRoutes(r *gin.RouterGroup, s *store) {
	r.GET("/channels/search", func(c *gin.Context) {
		handle := strings.TrimSpace(c.Query("handle"))
		if handle == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "handle is required"})
			return
		}
		if strings.EqualFold(handle, RejectedHandle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "search term rejected"})
			return
		}
		channels := s.search(handle)
		logger.Debug("mockforum: search %q matched %d channels", handle, len(channels))
		c.JSON(http.StatusOK, channels)
	})

	r.GET("/boards", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.list())
	})

	r.POST("/boards", func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		b, err := s.create(req.ChannelID)
		switch {
		case errors.Is(err, errUnknownChannel):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case errors.Is(err, errDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Info("mockforum: created board %s for %s", b.ID, b.ChannelID)
		c.JSON(http.StatusCreated, b)
	})
}

func auth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func delay(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d > 0 {
			select {
			case <-time.After(d):
			case <-c.Request.Context().Done():
				c.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
		}
		c.Next()
	}
}
