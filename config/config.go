// Package config holds app wide settings unmarshalled from Viper
// (environment, optional config file and the flags bound in /cmd).
package config

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yumyai/protprofile/logger"
)

// EnvPrefix is prepended to every environment key, e.g. PROTPROFILE_DATA_DIR.
const EnvPrefix = "PROTPROFILE"

// UniProtConfig are settings for the UniProt REST client
type UniProtConfig struct {
	// base of the entry endpoint, {base}/{accession}.txt
	BaseURL string `mapstructure:"base-url"`

	// pause between consecutive requests
	Delay time.Duration `mapstructure:"delay"`

	// per-request HTTP timeout
	Timeout time.Duration `mapstructure:"timeout"`
}

// ReportConfig controls the summary and charts
type ReportConfig struct {
	CorrThreshold float64 `mapstructure:"corr-threshold"`
	Bins          int     `mapstructure:"bins"`
	ClassColumn   string  `mapstructure:"class-column"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the root-level settings struct
type Config struct {
	// data directory; the database lives under it unless DB is set
	DataDir string `mapstructure:"data-dir"`
	// path to the SQLite run store
	DB       string `mapstructure:"db"`
	LogLevel string `mapstructure:"log-level"`

	UniProt UniProtConfig `mapstructure:"uniprot"`
	Report  ReportConfig  `mapstructure:"report"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

// SetDefaults registers every key so environment overrides are picked up by
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data-dir", "./data")
	v.SetDefault("db", "")
	v.SetDefault("log-level", "info")

	v.SetDefault("uniprot.base-url", "https://rest.uniprot.org/uniprotkb")
	v.SetDefault("uniprot.delay", 500*time.Millisecond)
	v.SetDefault("uniprot.timeout", 30*time.Second)

	v.SetDefault("report.corr-threshold", 0.5)
	v.SetDefault("report.bins", 10)
	v.SetDefault("report.class-column", "class")

	v.SetDefault("serve.addr", "0.0.0.0:8080")
}

// BindEnv makes PROTPROFILE_UNIPROT_DELAY override uniprot.delay and so on.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads .env into the process environment if present.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Warn("No .env found, using local environment")
	}
}

// New returns a Config populated from v.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}

	if c.DataDir == "" {
		logger.Warn("No data directory set, using default value (./data)")
		c.DataDir = "./data"
	}
	if c.DB == "" {
		c.DB = path.Join(c.DataDir, "db", "protprofile.db")
	}
	if c.UniProt.Delay < 0 {
		return c, fmt.Errorf("uniprot.delay must not be negative, got %s", c.UniProt.Delay)
	}
	if c.Report.Bins <= 0 {
		return c, fmt.Errorf("report.bins must be positive, got %d", c.Report.Bins)
	}
	return c, nil
}
