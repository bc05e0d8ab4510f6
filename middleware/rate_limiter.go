package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"soothely/config"
	"soothely/utils"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	clients   = make(map[string]*clientLimiter)
	clientsMu sync.Mutex
)

// RateLimiter throttles requests per client IP using a token bucket sized
// from MAX_REQUESTS_PER_MIN. Idle clients are evicted after three minutes.
func RateLimiter() gin.HandlerFunc {
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 100
	}
	limit := rate.Limit(float64(perMin) / 60)

	go cleanupClients()

	return func(c *gin.Context) {
		ip := getClientIP(c.Request)

		clientsMu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, perMin)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		clientsMu.Unlock()

		if !cl.limiter.Allow() {
			utils.JSONError(c, http.StatusTooManyRequests, "Rate limit exceeded", "Too many requests; slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func cleanupClients() {
	for {
		time.Sleep(time.Minute)
		clientsMu.Lock()
		for ip, cl := range clients {
			if time.Since(cl.lastSeen) > 3*time.Minute {
				delete(clients, ip)
			}
		}
		clientsMu.Unlock()
	}
}

func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
