package service

import (
	"strings"
	"sync"
	"time"
)

// CalcRateLimiter limita cuántos cálculos de dosis puede pedir una misma
// clave (usuario o IP) por ventana de tiempo.
type CalcRateLimiter interface {
	Allow(key string) bool
}

type memoryCalcRateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	counts  map[string]int
	resetAt map[string]time.Time
}

// NewCalcRateLimiter crea un limitador en memoria por proceso.
func NewCalcRateLimiter(window time.Duration, max int) CalcRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryCalcRateLimiter{
		window:  window,
		max:     max,
		counts:  make(map[string]int),
		resetAt: make(map[string]time.Time),
	}
}

func (l *memoryCalcRateLimiter) Allow(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	if reset, ok := l.resetAt[key]; !ok || now.After(reset) {
		l.counts[key] = 0
		l.resetAt[key] = now.Add(l.window)
	}
	l.counts[key]++
	return l.counts[key] <= l.max
}
