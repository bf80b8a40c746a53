package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

const sessionContextKey = "portal_session"

// requestIDMiddleware tags every request with an id the logger picks up.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// sessionMiddleware resolves the session cookie to a session object,
// creating an anonymous session when none exists, and persists the
// session after the handler ran.
func (s *server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session
		if id, err := c.Cookie(s.cfg.Session.CookieName); err == nil && id != "" {
			if stored, err := s.sessions.Get(c.Request.Context(), id); err == nil {
				sess = stored
			}
		}
		if sess == nil {
			sess = session.New()
			s.setSessionCookie(c, sess.ID)
		}

		c.Set(sessionContextKey, sess)
		c.Next()

		if err := s.sessions.Put(c.Request.Context(), sess); err != nil {
			s.log.WithError(err).Warn("failed to persist session")
		}
	}
}

// requireAuth rejects requests whose session carries no usable token.
// An expired JWT counts as no token; the UI redirects to login on 401.
func (s *server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess == nil || !sess.Authenticated || sess.Token == "" || sess.TokenExpired() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "user not authenticated",
				"errors":  gin.H{"auth": []string{"user not authenticated"}},
			})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

func (s *server) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.Session.CookieName, id, int(s.cfg.Session.TTL.Seconds()), "/", "", s.cfg.Session.CookieSecure, true)
}

func (s *server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.Session.CookieName, "", -1, "/", "", s.cfg.Session.CookieSecure, true)
}

// rateLimitMiddleware is a token-bucket limiter per client IP. Buckets
// idle for longer than the TTL are dropped to bound memory.
func rateLimitMiddleware(perSecond, burst int) gin.HandlerFunc {
	type bucket struct {
		lim *rate.Limiter
		ts  time.Time
	}
	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
		ttl     = 5 * time.Minute
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
			buckets[ip] = b
		}
		b.ts = time.Now()
		if len(buckets) > 10000 {
			for k, v := range buckets {
				if time.Since(v.ts) > ttl {
					delete(buckets, k)
				}
			}
		}
		allowed := b.lim.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
