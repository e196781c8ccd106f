package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/farouk/portfolio-relay/internal/api/constants"
	"github.com/farouk/portfolio-relay/internal/api/dto/common"
	"github.com/farouk/portfolio-relay/internal/logging"
)

// RateLimitMessage is returned to clients over their quota
const RateLimitMessage = "Too many requests from this IP, please try again later."

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Max requests a single client may make per Window
	Max int
	// Window is the length of one counting period
	Window time.Duration
}

type clientWindow struct {
	start time.Time
	count int
}

// RateLimiter caps requests per client key with a fixed window: a client's
// window opens on its first request and admits at most Max requests until
// Window has passed.
type RateLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	clients   map[string]*clientWindow
	lastSweep time.Time
	now       func() time.Time

	logger *logging.Logger
	// Throttled clients are logged at most once per minute
	throttleLog rate.Sometimes
}

// NewRateLimiter creates a new per-client rate limiter
func NewRateLimiter(config RateLimitConfig, logger *logging.Logger) *RateLimiter {
	if config.Max <= 0 {
		config.Max = 1
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &RateLimiter{
		config:      config,
		clients:     make(map[string]*clientWindow),
		now:         time.Now,
		logger:      logger,
		throttleLog: rate.Sometimes{First: 1, Interval: time.Minute},
	}
}

// Allow counts one request for key. It returns whether the request is
// accepted, how many requests the client has left in the current window and
// how long until that window resets.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	client, exists := rl.clients[key]
	if !exists || !now.Before(client.start.Add(rl.config.Window)) {
		client = &clientWindow{start: now}
		rl.clients[key] = client
	}

	resetIn := client.start.Add(rl.config.Window).Sub(now)
	if client.count >= rl.config.Max {
		return false, 0, resetIn
	}

	client.count++
	return true, rl.config.Max - client.count, resetIn
}

// Clients returns the number of tracked clients
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// sweep drops clients whose window has expired. Caller must hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.config.Window {
		return
	}

	for key, client := range rl.clients {
		if now.Sub(client.start) >= rl.config.Window {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}

// Middleware rejects over-quota clients with 429 before the handler runs.
// Clients are keyed by gin's ClientIP, which honours the engine's trusted
// proxy settings.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, remaining, resetIn := rl.Allow(ip)

		c.Header(constants.HeaderRateLimitLimit, strconv.Itoa(rl.config.Max))
		c.Header(constants.HeaderRateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			retry := int(math.Max(1, math.Ceil(resetIn.Seconds())))
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(retry))

			rl.throttleLog.Do(func() {
				rl.logger.Warn("Rate limit exceeded for %s on %s %s", ip, c.Request.Method, c.Request.URL.Path)
			})

			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewCodedErrorResponse(common.ErrCodeTooManyRequests, RateLimitMessage))
			return
		}

		c.Next()
	}
}
