package mcp

import (
	"context"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const requestIDKey contextKey = iota

// getRequestID extracts the request ID from context.
func getRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// requestIDMiddleware tags each call with an ID: the X-Request-Id header over HTTP,
// _meta.request_id over stdio, or a fresh UUID.
func requestIDMiddleware(transportMode string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var requestID string

			if transportMode != "stdio" {
				if extra := req.GetExtra(); extra != nil && extra.Header != nil {
					requestID = extra.Header.Get("X-Request-Id")
				}
			}

			// Some notifications carry nil params, and GetMeta can panic on a nil underlying value.
			if requestID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if id, ok := meta["request_id"].(string); ok {
								requestID = id
							}
						}
					}()
				}
			}

			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx = context.WithValue(ctx, requestIDKey, requestID)
			return next(ctx, method, req)
		}
	}
}
