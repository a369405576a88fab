package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/reqctx"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderSessionID = "X-Session-ID"
	HeaderWebsiteID = "X-Website-ID"
	HeaderStoreID   = "X-Store-ID"
	SessionCookie   = "session_id"
)

// RequestID propagates or assigns a correlation ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(reqctx.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Session puts the checkout session ID from the header or cookie into the request context.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderSessionID)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}
		if id != "" {
			c.Request = c.Request.WithContext(reqctx.WithSessionID(c.Request.Context(), id))
		}
		c.Next()
	}
}

// StoreScope puts the store scope from the request headers into the request context.
// Missing or malformed IDs are treated as 0, which resolves against broader scopes.
func StoreScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := models.Scope{
			WebsiteID: parseID(c.GetHeader(HeaderWebsiteID)),
			StoreID:   parseID(c.GetHeader(HeaderStoreID)),
		}
		c.Request = c.Request.WithContext(reqctx.WithScope(c.Request.Context(), scope))
		c.Next()
	}
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
