// Package config holds the run configuration of the miner. Defaults are
// compile-time constants; an optional TOML file and environment variables
// override them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"chapminer/pkg/database"
)

// PlaceholderAccessKey marks an unset BioGRID access key.
const PlaceholderAccessKey = "YOUR_ACCESS_KEY_HERE"

const (
	InteractionsFile = "chaperone_interactions.csv"
	DomainsFile      = "target_domains.csv"
	MasterFile       = "chaperone_domain_analysis_master.csv"
)

// DefaultChaperones is the fixed chaperone list (UniProt entry names).
var DefaultChaperones = []string{
	"DJC24_HUMAN", "DJC27_HUMAN", "DNJ5B_HUMAN", "DNJ5G_HUMAN",
	"DNJA1_HUMAN", "DNJA2_HUMAN", "DNJA3_HUMAN", "DNJA4_HUMAN",
	"DNJB1_HUMAN", "DNJB2_HUMAN", "DNJB3_HUMAN", "DNJB4_HUMAN",
	"DNJB5_HUMAN", "DNJB6_HUMAN", "DNJB7_HUMAN", "DNJB8_HUMAN",
	"DNJC2_HUMAN", "DNJC5_HUMAN", "DNJC7_HUMAN", "DNJC8_HUMAN",
	"DNJC9_HUMAN", "SACS_HUMAN",
}

type OutputConfig struct {
	Dir              string `toml:"dir"`
	InteractionsFile string `toml:"interactions_file"`
	DomainsFile      string `toml:"domains_file"`
	MasterFile       string `toml:"master_file"`
}

type UniProtConfig struct {
	BaseURL      string   `toml:"base_url"`
	PollInterval Duration `toml:"poll_interval"`
	BatchSize    int      `toml:"batch_size"`
	MaxIDLength  int      `toml:"max_id_length"`
}

type IntActConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

type BioGRIDConfig struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"base_url"`
	AccessKey string `toml:"access_key"`
	TaxID     int    `toml:"tax_id"`
}

type StoreConfig struct {
	Path string `toml:"path"` // empty disables the sqlite store
}

type APIConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	Chaperones []string      `toml:"chaperones"`
	Output     OutputConfig  `toml:"output"`
	UniProt    UniProtConfig `toml:"uniprot"`
	IntAct     IntActConfig  `toml:"intact"`
	BioGRID    BioGRIDConfig `toml:"biogrid"`
	Store      StoreConfig   `toml:"store"`
	API        APIConfig     `toml:"api"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Default() Config {
	return Config{
		Chaperones: append([]string(nil), DefaultChaperones...),
		Output: OutputConfig{
			Dir:              ".",
			InteractionsFile: InteractionsFile,
			DomainsFile:      DomainsFile,
			MasterFile:       MasterFile,
		},
		UniProt: UniProtConfig{
			BaseURL:      "https://rest.uniprot.org",
			PollInterval: Duration{3 * time.Second},
			BatchSize:    20,
			MaxIDLength:  15,
		},
		IntAct: IntActConfig{
			BaseURL: "https://www.ebi.ac.uk/Tools/webservices/psicquic/intact/webservices/current/search",
			Timeout: Duration{30 * time.Second},
		},
		BioGRID: BioGRIDConfig{
			Enabled:   false,
			BaseURL:   "https://webservice.thebiogrid.org",
			AccessKey: PlaceholderAccessKey,
			TaxID:     9606,
		},
		Store: StoreConfig{Path: database.DefaultConfig().Path},
		API:   APIConfig{Addr: ":8080"},
	}
}

// Load builds the configuration: defaults, then .env, then the TOML file at
// path (skipped when path is empty or missing), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	// .env is optional
	_ = godotenv.Load()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file '%s': %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse TOML: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BIOGRID_ACCESS_KEY"); v != "" {
		cfg.BioGRID.AccessKey = v
	}
	if v := os.Getenv("CHAPMINER_USE_BIOGRID"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.BioGRID.Enabled = b
		}
	}
	if v, ok := os.LookupEnv("CHAPMINER_DB_PATH"); ok {
		cfg.Store.Path = v
	}
	if v := os.Getenv("CHAPMINER_OUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("CHAPMINER_ADDR"); v != "" {
		cfg.API.Addr = v
	}
	if strings.TrimSpace(cfg.BioGRID.AccessKey) == "" {
		cfg.BioGRID.AccessKey = PlaceholderAccessKey
	}
}

func (c Config) Validate() error {
	if len(c.Chaperones) == 0 {
		return errors.New("config: chaperone list is empty")
	}
	if c.UniProt.BatchSize <= 0 {
		return fmt.Errorf("config: uniprot.batch_size must be positive, got %d", c.UniProt.BatchSize)
	}
	if c.UniProt.MaxIDLength <= 0 {
		return fmt.Errorf("config: uniprot.max_id_length must be positive, got %d", c.UniProt.MaxIDLength)
	}
	if c.Output.InteractionsFile == "" || c.Output.DomainsFile == "" || c.Output.MasterFile == "" {
		return errors.New("config: output file names must be set")
	}
	return nil
}

// BioGRIDActive reports whether the secondary source should be queried.
func (c Config) BioGRIDActive() bool {
	key := strings.TrimSpace(c.BioGRID.AccessKey)
	return c.BioGRID.Enabled && key != "" && key != PlaceholderAccessKey
}

func (o OutputConfig) InteractionsPath() string { return filepath.Join(o.Dir, o.InteractionsFile) }
func (o OutputConfig) DomainsPath() string      { return filepath.Join(o.Dir, o.DomainsFile) }
func (o OutputConfig) MasterPath() string       { return filepath.Join(o.Dir, o.MasterFile) }
