package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mindwell/mindwell-backend/pkg/clientip"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerXXSSProtection          = "X-XSS-Protection"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerXXSSProtection, "1; mode=block")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Global rate limiting (per-IP, 1/s, burst 10) ---

var (
	globalEntries    = make(map[string]*limiterEntry)
	globalEntriesMu  sync.Mutex
	globalCleanupRun bool
)

const (
	globalRateLimitRPS    = 1
	globalRateLimitBurst  = 10
	globalCleanupInterval = 5 * time.Minute
	globalLimiterTTL      = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

func getGlobalLimiter(ip string) *rate.Limiter {
	globalEntriesMu.Lock()
	defer globalEntriesMu.Unlock()
	startGlobalCleanupOnce()
	e, ok := globalEntries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(globalRateLimitRPS), globalRateLimitBurst),
			lastUse: time.Now(),
		}
		globalEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startGlobalCleanupOnce() {
	if globalCleanupRun {
		return
	}
	globalCleanupRun = true
	go func() {
		ticker := time.NewTicker(globalCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			globalEntriesMu.Lock()
			now := time.Now()
			for ip, e := range globalEntries {
				if now.Sub(e.lastUse) > globalLimiterTTL {
					delete(globalEntries, ip)
				}
			}
			globalEntriesMu.Unlock()
		}
	}()
}

// GlobalRateLimit limits each IP to 1 req/s, burst 10. Returns 429 when exceeded.
func GlobalRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r)
		if !getGlobalLimiter(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests. Please slow down."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Chatbot route rate limiting (1 req/5s, burst 2) ---
// The chatbot endpoints fan out to the paid LLM API, so they get a much
// stricter per-IP budget than the rest of the surface.

var (
	chatbotEntries    = make(map[string]*limiterEntry)
	chatbotEntriesMu  sync.Mutex
	chatbotCleanupRun bool
)

const (
	chatbotRateLimitEvery  = 5 * time.Second
	chatbotRateLimitBurst  = 2
	chatbotCleanupInterval = 5 * time.Minute
	chatbotLimiterTTL      = 30 * time.Minute
	chatbotPathPrefix      = "/api/chatbot/"
)

func getChatbotLimiter(ip string) *rate.Limiter {
	chatbotEntriesMu.Lock()
	defer chatbotEntriesMu.Unlock()
	startChatbotCleanupOnce()
	e, ok := chatbotEntries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(chatbotRateLimitEvery), chatbotRateLimitBurst),
			lastUse: time.Now(),
		}
		chatbotEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startChatbotCleanupOnce() {
	if chatbotCleanupRun {
		return
	}
	chatbotCleanupRun = true
	go func() {
		ticker := time.NewTicker(chatbotCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			chatbotEntriesMu.Lock()
			now := time.Now()
			for ip, e := range chatbotEntries {
				if now.Sub(e.lastUse) > chatbotLimiterTTL {
					delete(chatbotEntries, ip)
				}
			}
			chatbotEntriesMu.Unlock()
		}
	}()
}

// ChatbotRateLimit applies the stricter limit to chatbot routes only. Use
// after GlobalRateLimit.
func ChatbotRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, chatbotPathPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		ip := clientip.RealClientIP(r)
		if !getChatbotLimiter(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many chatbot requests. Please try again later."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns middlewares for production: SecurityHeaders →
// GlobalRateLimit → ChatbotRateLimit.
func ProductionSecurity() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		GlobalRateLimit,
		ChatbotRateLimit,
	}
}
