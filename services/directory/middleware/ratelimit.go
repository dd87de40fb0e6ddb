// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter table. When it is full, limiters
// idle for longer than idleEviction are dropped, then the least recently
// seen one if the table is still full.
const (
	maxTrackedClients = 10000
	idleEviction      = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-client-IP token bucket.
//
// # Thread Safety
//
// Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu         sync.Mutex
	clients    map[string]*clientLimiter
	maxClients int
	now        func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// client with the given burst. rps <= 0 returns nil, which Middleware
// treats as "no limit".
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:        rate.Limit(rps),
		burst:      burst,
		clients:    make(map[string]*clientLimiter),
		maxClients: maxTrackedClients,
		now:        time.Now,
	}
}

// Allow reports whether client may make a request now.
func (l *RateLimiter) Allow(client string) bool {
	return l.get(client).Allow()
}

func (l *RateLimiter) get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if cl, ok := l.clients[client]; ok {
		cl.lastSeen = now
		return cl.limiter
	}
	if len(l.clients) >= l.maxClients {
		l.evict(now)
	}
	cl := &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst), lastSeen: now}
	l.clients[client] = cl
	return cl.limiter
}

func (l *RateLimiter) evict(now time.Time) {
	var oldestKey string
	var oldest *clientLimiter
	for k, cl := range l.clients {
		if now.Sub(cl.lastSeen) > idleEviction {
			delete(l.clients, k)
			continue
		}
		if oldest == nil || cl.lastSeen.Before(oldest.lastSeen) {
			oldestKey, oldest = k, cl
		}
	}
	if len(l.clients) >= l.maxClients && oldest != nil {
		delete(l.clients, oldestKey)
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. A nil RateLimiter passes every request.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		if !l.Allow(c.ClientIP()) {
			retry := int(math.Ceil(1 / float64(l.rps)))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				datatypes.Fail("Too many requests", nil))
			return
		}
		c.Next()
	}
}
