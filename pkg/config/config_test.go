package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "students.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeFile(t, `
[server]
listen = ":9000"
request_timeout_ms = 250

[store]
seed_count = 2

[codec]
date_format = "dd.MM.yyyy"
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, DefaultService, cfg.Server.Service)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout())
	assert.Equal(t, 2, cfg.Store.SeedCount)
	assert.Equal(t, DefaultLogDir, cfg.Log.Dir)
	assert.Equal(t, DefaultTopic, cfg.Relay.Topic)

	df, err := cfg.DateFormat()
	require.NoError(t, err)
	assert.Equal(t, "02.01.2006", df.Layout())
}

func TestSeedCountZeroIsKept(t *testing.T) {
	cfg, err := Parse([]byte("[store]\nseed_count = 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Store.SeedCount)
}

func TestBlankStringsFallBack(t *testing.T) {
	cfg, err := Parse([]byte("[server]\nservice = \"  \"\n[codec]\ndate_format = \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultService, cfg.Server.Service)
	assert.Equal(t, "yyyy/MM/dd", cfg.Codec.DateFormat)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"negative seed":    "[store]\nseed_count = -1\n",
		"negative timeout": "[server]\nrequest_timeout_ms = -5\n",
		"bad date format":  "[codec]\ndate_format = \"HH:mm\"\n",
		"malformed toml":   "[server\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	_, err := Load(missing)
	require.ErrorIs(t, err, ErrNotFound)

	cfg, found, err := LoadOrDefault(missing)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), cfg)

	_, found, err = LoadOrDefault(writeFile(t, "[log]\ndir = \"logs\"\n"))
	require.NoError(t, err)
	assert.True(t, found)
}
