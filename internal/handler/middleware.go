package handler

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	requestBodyKey  = "request_body"
)

// RequestID reuses an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

type requestLogEntry struct {
	Time      string      `json:"time"`
	Method    string      `json:"method"`
	URL       string      `json:"url"`
	Status    int         `json:"status"`
	Duration  string      `json:"duration"`
	ClientIP  string      `json:"ip"`
	RequestID string      `json:"request_id,omitempty"`
	Body      interface{} `json:"body,omitempty"`
}

// RequestLogger writes one JSON line per finished request. Handlers that
// bind a JSON body store it under requestBodyKey to have it logged.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := requestLogEntry{
			Time:      start.UTC().Format(time.RFC3339Nano),
			Method:    c.Request.Method,
			URL:       c.Request.URL.RequestURI(),
			Status:    c.Writer.Status(),
			Duration:  time.Since(start).String(),
			ClientIP:  c.ClientIP(),
			RequestID: RequestIDFrom(c),
		}
		if body, ok := c.Get(requestBodyKey); ok {
			entry.Body = body
		}
		line, err := json.Marshal(entry)
		if err != nil {
			logger.Printf("failed to encode request log: %v", err)
			return
		}
		logger.Println(string(line))
	}
}
