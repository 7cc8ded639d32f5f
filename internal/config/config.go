package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
// Model artifacts are fetched from Bucket when they are missing on disk.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether object storage has been configured at all.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// ModelConfig describes one pretrained detection model.
type ModelConfig struct {
	// Path is the ONNX artifact on local disk.
	Path string
	// NamesPath is an optional class names file, one label per line.
	NamesPath string
	// ObjectKey is the object storage key used to fetch Path when it is missing.
	ObjectKey string
	// URL is the inference endpoint used by the remote backend.
	URL string
}

// DetectorConfig holds the settings shared by both detectors.
type DetectorConfig struct {
	Backend        string
	SharedLibPath  string
	Confidence     float64
	IoU            float64
	MaxDetections  int
	InputSize      int
	RequestTimeout time.Duration
	Custom         ModelConfig
	Default        ModelConfig
}

// DrawConfig controls how annotated images are rendered.
type DrawConfig struct {
	LineThickness  int
	FontSize       float64
	HideLabels     bool
	HideConfidence bool
}

// IdentifyConfig controls which optional parts are included in /identify responses.
type IdentifyConfig struct {
	IncludeImages bool
	IncludeCustom bool
	// MaxImagePixels rejects uploads whose decoded width*height exceeds it; 0 disables the check.
	MaxImagePixels int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost      string
	Port         string
	Timezone     string
	LogLevel     string
	BodyLimitMB  int
	LabelsSource string
	Detector     DetectorConfig
	Draw         DrawConfig
	Identify     IdentifyConfig
	Database     DatabaseConfig
	MinIO        MinIOConfig
}

const (
	LabelsSourceBuiltin  = "builtin"
	LabelsSourcePostgres = "postgres"

	BackendONNX   = "onnx"
	BackendRemote = "remote"

	// DefaultMaxImagePixels matches Pillow's decompression bomb threshold.
	DefaultMaxImagePixels = 178956970
)

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:      getEnv("APP_HOST", "localhost:5000"),
		Port:         getEnv("PORT", "5000"),
		Timezone:     getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		BodyLimitMB:  getEnvInt("BODY_LIMIT_MB", 50),
		LabelsSource: getEnv("LABELS_SOURCE", LabelsSourceBuiltin),
		Detector: DetectorConfig{
			Backend:        getEnv("DETECTOR_BACKEND", BackendONNX),
			SharedLibPath:  getEnv("ONNXRUNTIME_LIB", ""),
			Confidence:     getEnvFloat("DETECT_CONF", 0.15),
			IoU:            getEnvFloat("DETECT_IOU", 0.15),
			MaxDetections:  getEnvInt("DETECT_MAX_DET", 1000),
			InputSize:      getEnvInt("DETECT_INPUT_SIZE", 640),
			RequestTimeout: time.Duration(getEnvInt("DETECT_TIMEOUT_SEC", 30)) * time.Second,
			Custom: ModelConfig{
				Path:      getEnv("CUSTOM_MODEL_PATH", "models/trained-v2.onnx"),
				NamesPath: getEnv("CUSTOM_MODEL_NAMES", "models/trained-v2.names"),
				ObjectKey: getEnv("CUSTOM_MODEL_KEY", ""),
				URL:       getEnv("CUSTOM_MODEL_URL", ""),
			},
			Default: ModelConfig{
				Path:      getEnv("DEFAULT_MODEL_PATH", "models/yolov5s.onnx"),
				NamesPath: getEnv("DEFAULT_MODEL_NAMES", ""),
				ObjectKey: getEnv("DEFAULT_MODEL_KEY", ""),
				URL:       getEnv("DEFAULT_MODEL_URL", ""),
			},
		},
		Draw: DrawConfig{
			LineThickness:  getEnvInt("DRAW_LINE_THICKNESS", 5),
			FontSize:       getEnvFloat("DRAW_FONT_SIZE", 20),
			HideLabels:     getEnvBool("DRAW_HIDE_LABELS", false),
			HideConfidence: getEnvBool("DRAW_HIDE_CONF", false),
		},
		Identify: IdentifyConfig{
			IncludeImages:  getEnvBool("IDENTIFY_INCLUDE_IMAGES", false),
			IncludeCustom:  getEnvBool("IDENTIFY_INCLUDE_CUSTOM", false),
			MaxImagePixels: getEnvInt("MAX_IMAGE_PIXELS", DefaultMaxImagePixels),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
