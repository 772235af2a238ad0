package middlewares

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/utils"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle is a per-IP token bucket, one instance per route group
// ("public-api", "admin-api", "admin-login").
type Throttle struct {
	name     string
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	visitors map[string]*visitor
	mu       sync.Mutex
	now      func() time.Time
}

// NewThrottle allows perMinute requests per client IP, with bursts up to
// perMinute. perMinute <= 0 disables throttling.
func NewThrottle(name string, perMinute int) *Throttle {
	limit := rate.Inf
	burst := 0
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60)
		burst = perMinute
	}
	return &Throttle{
		name:     name,
		limit:    limit,
		burst:    burst,
		ttl:      10 * time.Minute,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (t *Throttle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if t.limit == rate.Inf {
			c.Next()
			return
		}

		limiter := t.limiterFor(c.ClientIP())
		if !limiter.AllowN(t.now(), 1) {
			retry := int(math.Ceil(1 / float64(t.limit)))
			c.Header("Retry-After", strconv.Itoa(retry))
			utils.InfoLogger.Printf("throttle %s: too many requests from %s", t.name, c.ClientIP())
			utils.AbortWithError(c, utils.TooManyRequests("Too many requests. Please slow down."))
			return
		}
		c.Next()
	}
}

func (t *Throttle) limiterFor(ip string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	v, exists := t.visitors[ip]
	if !exists {
		// bersihkan visitor lama sebelum menambah yang baru
		for key, old := range t.visitors {
			if now.Sub(old.lastSeen) > t.ttl {
				delete(t.visitors, key)
			}
		}
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}
