// Package middleware provides the HTTP middleware stack for the API.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/zaika/pkg/cache"
	"github.com/shashiranjanraj/zaika/pkg/response"
)

// bucket tracks a sliding-window request count for one IP. Used when Redis
// is unavailable, so a single instance still rate-limits locally.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}

	b.count++
	return b.count <= max
}

var (
	bucketsMu sync.Mutex
	buckets   = map[string]*bucket{}
)

func init() {
	// Evict buckets whose window has expired; prevents unbounded memory
	// growth on long-running servers.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			bucketsMu.Lock()
			for ip, b := range buckets {
				b.mu.Lock()
				expired := now.After(b.resetAt)
				b.mu.Unlock()
				if expired {
					delete(buckets, ip)
				}
			}
			bucketsMu.Unlock()
		}
	}()
}

func getBucket(ip string) *bucket {
	bucketsMu.Lock()
	defer bucketsMu.Unlock()

	if b, ok := buckets[ip]; ok {
		return b
	}

	b := &bucket{resetAt: time.Now().Add(time.Minute)}
	buckets[ip] = b
	return b
}

// RateLimit limits each IP to max requests per window. Counters live in
// Redis when available so the limit holds across instances; otherwise the
// in-memory buckets take over.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !allowRequest(ip, max, window) {
				response.Err(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allowRequest(ip string, max int, window time.Duration) bool {
	key := fmt.Sprintf("ratelimit:%s", ip)
	if count, ok := cache.Incr(key, window); ok {
		return count <= int64(max)
	}
	return getBucket(ip).allow(max, window)
}
