package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jurisflow/jurisflow/internal/types"
)

func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	// Echo the id so clients can correlate
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
