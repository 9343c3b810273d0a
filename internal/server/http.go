package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/auth"
	"github.com/reelbase/catalog/internal/conf"
	"github.com/reelbase/catalog/internal/service"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer, auth.NewJWTManager)

// statusReply lets create replies pick their own status code.
type statusReply interface {
	HTTPStatus() int
}

// envelope is the uniform success body.
type envelope struct {
	Success   bool         `json:"success"`
	Data      any          `json:"data,omitempty"`
	Meta      *v1.PageMeta `json:"meta,omitempty"`
	Message   string       `json:"message,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// errEnvelope is the uniform error body.
type errEnvelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Errors    string    `json:"errors,omitempty"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// responseEncoder wraps every reply in the success envelope. Paged replies
// get their meta hoisted next to the data; replies implementing statusReply
// (resource creations) choose their status code.
func responseEncoder(w http.ResponseWriter, r *http.Request, v any) error {
	if v == nil {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	env := envelope{Success: true, Timestamp: time.Now().UTC()}
	if paged, ok := v.(*v1.PagedReply); ok {
		env.Data = paged.Data
		env.Meta = paged.Meta
	} else {
		env.Data = v
	}

	code := http.StatusOK
	if sr, ok := v.(statusReply); ok {
		code = sr.HTTPStatus()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(env)
}

// errorEncoder translates coded errors into the error envelope; anything
// uncoded becomes a 500.
func errorEncoder(w http.ResponseWriter, r *http.Request, err error) {
	se := errors.FromError(err)
	body := errEnvelope{
		Success:   false,
		Message:   se.Message,
		Errors:    se.Reason,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC(),
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(int(se.Code))
	_ = json.NewEncoder(w).Encode(body)
}

// NewHTTPServer builds the kratos HTTP server: recovery, request ids, the
// dual-mode write guard, envelope encoders, and the catalog routes.
func NewHTTPServer(c *conf.Server, a *conf.Auth, jwtMgr *auth.JWTManager, svc *service.CatalogService, logger log.Logger) *khttp.Server {
	opts := []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
			RequestIDMiddleware(),
			AuthMiddleware(a, jwtMgr),
		),
		khttp.ResponseEncoder(responseEncoder),
		khttp.ErrorEncoder(errorEncoder),
	}
	if c.Http.Network != "" {
		opts = append(opts, khttp.Network(c.Http.Network))
	}
	if c.Http.Addr != "" {
		opts = append(opts, khttp.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		opts = append(opts, khttp.Timeout(c.Http.TimeoutOrDefault(30*time.Second)))
	}

	srv := khttp.NewServer(opts...)
	RegisterCatalogRoutes(srv, svc)
	return srv
}
