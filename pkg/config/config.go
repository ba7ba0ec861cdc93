// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeydtaylor/steeze-students/pkg/codec"
)

const (
	DefaultService   = "students"
	DefaultListen    = ":32000"
	DefaultSeedCount = 10
	DefaultLogDir    = "log"
	DefaultTopic     = "students.changes"
)

// Config is the service file (students.toml).
type Config struct {
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
	Codec  Codec  `toml:"codec"`
	Log    Log    `toml:"log"`
	Relay  Relay  `toml:"relay"`
}

type Server struct {
	Service          string `toml:"service"`
	Listen           string `toml:"listen"`
	RequestTimeoutMS int    `toml:"request_timeout_ms"`
}

type Store struct {
	SeedCount int `toml:"seed_count"`
}

type Codec struct {
	DateFormat string `toml:"date_format"`
}

type Log struct {
	Dir string `toml:"dir"`
}

type Relay struct {
	Topic string `toml:"topic"`
}

func Default() Config {
	return Config{
		Server: Server{Service: DefaultService, Listen: DefaultListen},
		Store:  Store{SeedCount: DefaultSeedCount},
		Codec:  Codec{DateFormat: codec.DefaultDatePattern},
		Log:    Log{Dir: DefaultLogDir},
		Relay:  Relay{Topic: DefaultTopic},
	}
}

// Validate trims fields, fills blanks with defaults and rejects values the
// service cannot run with.
func (c *Config) Validate() error {
	c.normalize()
	if c.Server.RequestTimeoutMS < 0 {
		return fmt.Errorf("server.request_timeout_ms: must be >= 0, got %d", c.Server.RequestTimeoutMS)
	}
	if c.Store.SeedCount < 0 {
		return fmt.Errorf("store.seed_count: must be >= 0, got %d", c.Store.SeedCount)
	}
	if _, err := codec.ParseDateFormat(c.Codec.DateFormat); err != nil {
		return fmt.Errorf("codec.date_format: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Server.Service = orDefault(c.Server.Service, DefaultService)
	c.Server.Listen = orDefault(c.Server.Listen, DefaultListen)
	c.Codec.DateFormat = orDefault(c.Codec.DateFormat, codec.DefaultDatePattern)
	c.Log.Dir = orDefault(c.Log.Dir, DefaultLogDir)
	c.Relay.Topic = orDefault(c.Relay.Topic, DefaultTopic)
}

func (c Config) DateFormat() (codec.DateFormat, error) {
	return codec.ParseDateFormat(c.Codec.DateFormat)
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutMS) * time.Millisecond
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
