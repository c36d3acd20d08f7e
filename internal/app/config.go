package app

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Preference keys shared with the preferences file.
const (
	PrefColorsPath   = "colors.path"
	PrefCameraDevice = "camera.device"
	PrefCameraFPS    = "camera.fps"
	PrefWindowWidth  = "window.width"
	PrefWindowHeight = "window.height"
)

// Environment overrides, also read from a .env file in the working directory.
const (
	EnvColorsPath   = "COLOR_DETECTOR_COLORS"
	EnvCameraDevice = "COLOR_DETECTOR_CAMERA"
	EnvCameraFPS    = "COLOR_DETECTOR_FPS"
)

const (
	// DefaultColorsPath is the data file looked for when nothing is configured.
	DefaultColorsPath = "colors.csv"

	// DefaultFPS is the camera sampling rate.
	DefaultFPS = 30
)

// Config holds the settings the application starts with.
type Config struct {
	ColorsPath     string
	CameraDevice   int
	SampleInterval time.Duration
	WindowWidth    float32
	WindowHeight   float32
}

// PrefsSource is the subset of the preferences store Config reads from.
type PrefsSource interface {
	String(key string) string
	FloatWithFallback(key string, fallback float64) float64
}

// DefaultConfig returns the built-in settings: colors.csv in the
// working directory, camera 0 at 30 fps, and a phone-sized window.
func DefaultConfig() Config {
	return Config{
		ColorsPath:     DefaultColorsPath,
		CameraDevice:   0,
		SampleInterval: fpsInterval(DefaultFPS),
		WindowWidth:    360,
		WindowHeight:   640,
	}
}

// LoadConfig layers defaults, then preferences, then environment variables.
// prefs may be nil. A missing .env file is not an error.
func LoadConfig(prefs PrefsSource, logger *log.Logger) Config {
	if logger == nil {
		logger = log.Default()
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Printf("Config: ignoring .env: %v", err)
	}

	cfg := DefaultConfig()
	if prefs != nil {
		if p := prefs.String(PrefColorsPath); p != "" {
			cfg.ColorsPath = p
		}
		if d := prefs.FloatWithFallback(PrefCameraDevice, float64(cfg.CameraDevice)); d >= 0 {
			cfg.CameraDevice = int(d)
		} else {
			logger.Printf("Config: ignoring %s=%v", PrefCameraDevice, d)
		}
		if fps := prefs.FloatWithFallback(PrefCameraFPS, 0); fps > 0 {
			cfg.SampleInterval = fpsInterval(fps)
		}
		cfg.WindowWidth = float32(prefs.FloatWithFallback(PrefWindowWidth, float64(cfg.WindowWidth)))
		cfg.WindowHeight = float32(prefs.FloatWithFallback(PrefWindowHeight, float64(cfg.WindowHeight)))
	}

	if v, ok := os.LookupEnv(EnvColorsPath); ok {
		cfg.ColorsPath = v
	}
	if v := os.Getenv(EnvCameraDevice); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CameraDevice = n
		} else {
			logger.Printf("Config: ignoring %s=%q", EnvCameraDevice, v)
		}
	}
	if v := os.Getenv(EnvCameraFPS); v != "" {
		if fps, err := strconv.ParseFloat(v, 64); err == nil && fps > 0 {
			cfg.SampleInterval = fpsInterval(fps)
		} else {
			logger.Printf("Config: ignoring %s=%q", EnvCameraFPS, v)
		}
	}
	return cfg
}

func fpsInterval(fps float64) time.Duration {
	return time.Duration(float64(time.Second) / fps)
}
