// internal/config/model.go
//
// Typed configuration model for Roster.
//
// Context
// -------
// These structs define the shape of the tree that loader.go builds from
// three overlay layers:
//
//   • optional `conf/.env`                     – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `ROSTER_`-prefixed environment overrides – highest precedence.
//
// Defaults are applied after unmarshal and before validation, so a
// minimal YAML file (even an empty one) yields a runnable config.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gt=0"`
}

// Log controls the file logger.
type Log struct {
	Dir string `koanf:"dir"` // relative to Paths.Root unless absolute
	Tee bool   `koanf:"tee"` // also write to stdout
}

// Forms controls definitions and submission limits.
type Forms struct {
	Dir          string        `koanf:"dir"` // optional override definitions
	MaxBodyBytes int64         `koanf:"max_body_bytes" validate:"gt=0"`
	IdleTTL      time.Duration `koanf:"idle_ttl"       validate:"gt=0"` // abandoned sessions are disposed after this
	MaxOpen      int           `koanf:"max_open"       validate:"gte=0"` // oldest idle session is disposed above this
}

// CSRF holds the token signing key, base64url without padding.  Empty means
// a random key per process.
type CSRF struct {
	Key string `koanf:"key" validate:"omitempty,base64rawurl"`
}

// SeedClassroom is one room created at startup.  Capacity is kept as text
// so it passes through the same setter a form would use.
type SeedClassroom struct {
	RoomNumber string `koanf:"room_number"`
	Type       string `koanf:"type"`
	Capacity   string `koanf:"capacity"`
}

// Seed lists entities created at startup.
type Seed struct {
	Classrooms []SeedClassroom `koanf:"classrooms"`
}

// Paths is resolved at runtime.
type Paths struct {
	Root string // ROSTER_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load().
type Config struct {
	HTTP  HTTP  `koanf:"http"`
	Log   Log   `koanf:"log"`
	Forms Forms `koanf:"forms"`
	CSRF  CSRF  `koanf:"csrf"`
	Seed  Seed  `koanf:"seed"`
	Paths Paths `koanf:"-"`
}

// Defaults.
const (
	DefaultListenAddr   = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
	DefaultLogDir       = "logs"
	DefaultMaxBodyBytes = 64 << 10
	DefaultFormIdleTTL  = 30 * time.Minute
	DefaultMaxOpenForms = 1000
)

func applyDefaults(c *Config) {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = DefaultListenAddr
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = DefaultReadTimeout
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = DefaultWriteTimeout
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = DefaultIdleTimeout
	}
	if c.Log.Dir == "" {
		c.Log.Dir = DefaultLogDir
	}
	if c.Forms.MaxBodyBytes == 0 {
		c.Forms.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Forms.IdleTTL == 0 {
		c.Forms.IdleTTL = DefaultFormIdleTTL
	}
	if c.Forms.MaxOpen == 0 {
		c.Forms.MaxOpen = DefaultMaxOpenForms
	}
}
