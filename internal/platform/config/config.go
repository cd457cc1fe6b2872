package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"momentum/internal/platform/clock"
)

const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
	StoreVault  = "vault"

	envPrefix      = "MOMENTUM"
	configFileName = "momentum.yaml"
)

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	DataDir      string
	Store        string
	SessionsPath string
	GoalsPath    string
	DBPath       string
	CatalogPath  string
	ReportStart  time.Time
	Log          LogConfig
}

// Load resolves settings from, in increasing priority: defaults, <data dir>/momentum.yaml,
// a .env file in the working directory, and MOMENTUM_* variables. A non-empty dataDir
// argument wins over everything for the data directory itself.
func Load(dataDir string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if strings.TrimSpace(dataDir) == "" {
		dataDir = v.GetString("data_dir")
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".momentum")
	}

	cfgFile := filepath.Join(dataDir, configFileName)
	if _, err := os.Stat(cfgFile); err == nil {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", cfgFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat %s: %w", cfgFile, err)
	}

	cfg := Config{
		DataDir:      dataDir,
		Store:        strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		SessionsPath: inDir(dataDir, v.GetString("sessions_file")),
		GoalsPath:    inDir(dataDir, v.GetString("goals_file")),
		DBPath:       inDir(dataDir, v.GetString("db_file")),
		CatalogPath:  inDir(dataDir, v.GetString("catalog_file")),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}
	start, err := clock.ParseDate(v.GetString("report_start"))
	if err != nil {
		return Config{}, fmt.Errorf("report_start must be YYYY-MM-DD: %w", err)
	}
	cfg.ReportStart = start

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("store", StoreCSV)
	v.SetDefault("sessions_file", "Session_log.csv")
	v.SetDefault("goals_file", "Period_goals.csv")
	v.SetDefault("db_file", "momentum.db")
	v.SetDefault("catalog_file", "catalog.yaml")
	v.SetDefault("report_start", "2025-01-01")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func (c Config) Validate() error {
	var problems []string
	switch c.Store {
	case StoreCSV, StoreSQLite, StoreVault:
	default:
		problems = append(problems, fmt.Sprintf("store %q must be one of csv, sqlite, vault", c.Store))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("log format %q must be console or json", c.Log.Format))
	}
	if c.DataDir == "" {
		problems = append(problems, "data dir is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func inDir(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
