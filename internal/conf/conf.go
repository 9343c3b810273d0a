// Package conf holds the bootstrap configuration, loaded from YAML files
// and CATALOG_-prefixed environment variables via the kratos config loader.
package conf

import "time"

// Bootstrap is the top-level configuration document.
type Bootstrap struct {
	Server  *Server  `json:"server"`
	Data    *Data    `json:"data"`
	Auth    *Auth    `json:"auth"`
	Catalog *Catalog `json:"catalog"`
}

// Server configures the HTTP transport.
type Server struct {
	Http *HTTP `json:"http"`
}

// HTTP transport settings.
type HTTP struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// TimeoutOrDefault parses the request timeout, falling back to def.
func (h *HTTP) TimeoutOrDefault(def time.Duration) time.Duration {
	return parseDuration(h.Timeout, def)
}

// Data configures the database and cache connections.
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

// Database settings. Driver is "postgres" or "sqlite"; Source is the DSN.
type Database struct {
	Driver          string `json:"driver"`
	Source          string `json:"source"`
	MaxIdleConns    int    `json:"max_idle_conns"`
	MaxOpenConns    int    `json:"max_open_conns"`
	ConnMaxLifetime string `json:"conn_max_lifetime"`
}

// ConnMaxLifetimeOrDefault parses the pool lifetime, falling back to def.
func (d *Database) ConnMaxLifetimeOrDefault(def time.Duration) time.Duration {
	return parseDuration(d.ConnMaxLifetime, def)
}

// Redis settings. An empty Addr disables the cache entirely.
type Redis struct {
	Addr         string `json:"addr"`
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
}

// ReadTimeoutOrDefault parses the read timeout, falling back to def.
func (r *Redis) ReadTimeoutOrDefault(def time.Duration) time.Duration {
	return parseDuration(r.ReadTimeout, def)
}

// WriteTimeoutOrDefault parses the write timeout, falling back to def.
func (r *Redis) WriteTimeoutOrDefault(def time.Duration) time.Duration {
	return parseDuration(r.WriteTimeout, def)
}

// Auth configures the dual-mode write guard: a static API token and the
// HS256 secret used to mint and verify JWTs. Either credential authorizes
// a write operation.
type Auth struct {
	ApiToken  string `json:"api_token"`
	JwtSecret string `json:"jwt_secret"`
	JwtExpiry string `json:"jwt_expiry"`
}

// JwtExpiryOrDefault parses the token lifetime, falling back to def.
func (a *Auth) JwtExpiryOrDefault(def time.Duration) time.Duration {
	return parseDuration(a.JwtExpiry, def)
}

// Catalog holds application-level knobs.
type Catalog struct {
	DefaultPageSize int `json:"default_page_size"`
	MaxPageSize     int `json:"max_page_size"`
	// MaxConcurrentTx bounds how many store transactions may run at once.
	MaxConcurrentTx int64 `json:"max_concurrent_tx"`
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
