package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "projplan.cfg.json"

// MemoryConfig holds JSON file storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
	KeepBackups    int    `json:"keepBackups" mapstructure:"keepBackups"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// Defaults holds the attribute values given to new projectors and the
// default amounts used by duplicate and align commands.
type Defaults struct {
	ThrowDistance   float64
	ImageWidth      float64
	ThrowRatio      float64
	AspectW         int
	AspectH         int
	EdgeBlend       float64
	DuplicateOffset float64
	AlignSpacing    float64
}

// OverlapConfig holds the overlap detection thresholds
type OverlapConfig struct {
	ThrowTolerance  float64
	ProximityFactor float64
}

// InfluxConfig holds the run telemetry connection settings
type InfluxConfig struct {
	Enabled bool
	URL     string
	Token   string
	Org     string
	Bucket  string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults registers the default value of every key. Load calls it; it
// is exported so a caller can run on defaults when no file exists.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./projplanlogs")
	viper.SetDefault("units", "metric")

	viper.SetDefault("defaults.throwDistance", 4.0)
	viper.SetDefault("defaults.imageWidth", 2.0)
	viper.SetDefault("defaults.throwRatio", 2.0)
	viper.SetDefault("defaults.aspectW", 16)
	viper.SetDefault("defaults.aspectH", 9)
	viper.SetDefault("defaults.edgeBlend", 0.2)
	viper.SetDefault("defaults.duplicateOffset", 1.0)
	viper.SetDefault("defaults.alignSpacing", 1.0)

	viper.SetDefault("overlap.throwTolerance", 0.2)
	viper.SetDefault("overlap.proximityFactor", 0.5)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./projects")
	viper.SetDefault("storage.memory.compressOutput", false)
	viper.SetDefault("storage.memory.keepBackups", 5)
	viper.SetDefault("storage.sqlite.path", "./projplan.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "projplan")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "projplan")
	viper.SetDefault("influx.bucket", "planner")
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
			KeepBackups:    viper.GetInt("storage.memory.keepBackups"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
	}
}

// GetDefaults returns the projector and command defaults.
func GetDefaults() Defaults {
	return Defaults{
		ThrowDistance:   viper.GetFloat64("defaults.throwDistance"),
		ImageWidth:      viper.GetFloat64("defaults.imageWidth"),
		ThrowRatio:      viper.GetFloat64("defaults.throwRatio"),
		AspectW:         viper.GetInt("defaults.aspectW"),
		AspectH:         viper.GetInt("defaults.aspectH"),
		EdgeBlend:       viper.GetFloat64("defaults.edgeBlend"),
		DuplicateOffset: viper.GetFloat64("defaults.duplicateOffset"),
		AlignSpacing:    viper.GetFloat64("defaults.alignSpacing"),
	}
}

// GetOverlapConfig returns the overlap detection thresholds.
func GetOverlapConfig() OverlapConfig {
	return OverlapConfig{
		ThrowTolerance:  viper.GetFloat64("overlap.throwTolerance"),
		ProximityFactor: viper.GetFloat64("overlap.proximityFactor"),
	}
}

// GetInfluxConfig returns the run telemetry settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled: viper.GetBool("influx.enabled"),
		URL: fmt.Sprintf(
			"%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		Token:  viper.GetString("influx.token"),
		Org:    viper.GetString("influx.org"),
		Bucket: viper.GetString("influx.bucket"),
	}
}
