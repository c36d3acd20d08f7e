package app

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mapPrefs map[string]interface{}

func (m mapPrefs) String(key string) string {
	s, _ := m[key].(string)
	return s
}

func (m mapPrefs) FloatWithFallback(key string, fallback float64) float64 {
	if f, ok := m[key].(float64); ok {
		return f
	}
	return fallback
}

func quietLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "colors.csv", cfg.ColorsPath)
	assert.Equal(t, 0, cfg.CameraDevice)
	assert.Equal(t, time.Second/30, cfg.SampleInterval)
	assert.Equal(t, float32(360), cfg.WindowWidth)
	assert.Equal(t, float32(640), cfg.WindowHeight)
}

func TestLoadConfigFromPrefs(t *testing.T) {
	logger, _ := quietLogger()
	cfg := LoadConfig(mapPrefs{
		PrefColorsPath:   "/data/colors.csv",
		PrefCameraDevice: 2.0,
		PrefCameraFPS:    10.0,
		PrefWindowWidth:  800.0,
	}, logger)

	assert.Equal(t, "/data/colors.csv", cfg.ColorsPath)
	assert.Equal(t, 2, cfg.CameraDevice)
	assert.Equal(t, 100*time.Millisecond, cfg.SampleInterval)
	assert.Equal(t, float32(800), cfg.WindowWidth)
	assert.Equal(t, float32(640), cfg.WindowHeight)
}

func TestLoadConfigEnvOverridesPrefs(t *testing.T) {
	t.Setenv(EnvColorsPath, "/env/colors.csv")
	t.Setenv(EnvCameraDevice, "1")
	t.Setenv(EnvCameraFPS, "20")

	logger, _ := quietLogger()
	cfg := LoadConfig(mapPrefs{PrefColorsPath: "/data/colors.csv"}, logger)

	assert.Equal(t, "/env/colors.csv", cfg.ColorsPath)
	assert.Equal(t, 1, cfg.CameraDevice)
	assert.Equal(t, 50*time.Millisecond, cfg.SampleInterval)
}

func TestLoadConfigEmptyEnvDisablesDataFile(t *testing.T) {
	t.Setenv(EnvColorsPath, "")
	logger, _ := quietLogger()
	assert.Empty(t, LoadConfig(nil, logger).ColorsPath)
}

func TestLoadConfigIgnoresBadEnv(t *testing.T) {
	t.Setenv(EnvCameraDevice, "front")
	t.Setenv(EnvCameraFPS, "-5")

	logger, buf := quietLogger()
	cfg := LoadConfig(nil, logger)

	assert.Equal(t, 0, cfg.CameraDevice)
	assert.Equal(t, time.Second/30, cfg.SampleInterval)
	assert.Contains(t, buf.String(), EnvCameraDevice)
	assert.Contains(t, buf.String(), EnvCameraFPS)
}

func TestLoadConfigIgnoresNegativePrefsDevice(t *testing.T) {
	t.Setenv(EnvCameraDevice, "")
	logger, buf := quietLogger()
	cfg := LoadConfig(mapPrefs{PrefCameraDevice: -3.0}, logger)

	assert.Equal(t, 0, cfg.CameraDevice)
	assert.Contains(t, buf.String(), PrefCameraDevice)
}
