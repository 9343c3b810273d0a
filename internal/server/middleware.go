package server

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/google/uuid"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/auth"
	"github.com/reelbase/catalog/internal/conf"
)

type requestIDKey struct{}

// RequestIDMiddleware tags every request with an id, echoed back in the
// X-Request-Id reply header and available from the context.
func RequestIDMiddleware() middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			id := uuid.NewString()
			if tr, ok := transport.FromServerContext(ctx); ok {
				if incoming := tr.RequestHeader().Get("X-Request-Id"); incoming != "" {
					id = incoming
				}
				tr.ReplyHeader().Set("X-Request-Id", id)
			}
			return handler(context.WithValue(ctx, requestIDKey{}, id), req)
		}
	}
}

// RequestIDFromContext returns the request id, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AuthMiddleware guards write operations with a dual-mode bearer check:
// the presented token must equal the static API token or verify as a JWT.
// Read operations pass through untouched.
func AuthMiddleware(c *conf.Auth, jwtMgr *auth.JWTManager) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return nil, errors.Unauthorized("UNAUTHORIZED", "missing transport info")
			}
			if !v1.WriteOperations[tr.Operation()] {
				return handler(ctx, req)
			}

			header := tr.RequestHeader().Get("Authorization")
			if header == "" {
				return nil, errors.Unauthorized("UNAUTHORIZED", "missing Authorization header")
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return nil, errors.Unauthorized("UNAUTHORIZED", "invalid Authorization header format")
			}
			token := parts[1]

			if c.ApiToken != "" && token == c.ApiToken {
				return handler(ctx, req)
			}
			if _, err := jwtMgr.Validate(token); err == nil {
				return handler(ctx, req)
			}
			return nil, errors.Unauthorized("UNAUTHORIZED", "invalid token")
		}
	}
}
