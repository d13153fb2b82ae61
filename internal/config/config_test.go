package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	req := require.New(t)
	t.Setenv("CONFIG_ENV", "does-not-exist")

	// main relies on Load never handing back a nil config without an error.
	cfg, err := Load()
	req.NoError(err)
	req.NotNil(cfg)

	req.Equal("release", cfg.Mode)
	req.Equal(8080, cfg.Port)
	req.Equal(int64(32768), cfg.ReadLimit)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal("https://api-v2.soundcloud.com", cfg.SoundcloudAPIURL)
}
