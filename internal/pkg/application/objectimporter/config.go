package objectimporter

import (
	"io"
	"time"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/internal/pkg/application/importer"
	"github.com/diwise/object-importer/internal/pkg/application/metadata"
	yaml "gopkg.in/yaml.v2"
)

type StoreConfig struct {
	URL            string  `yaml:"url"`
	RateLimit      float64 `yaml:"rateLimit"`
	RateBurst      int     `yaml:"rateBurst"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
}

func (s StoreConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type MetadataConfig struct {
	TTLSeconds int `yaml:"ttlSeconds"`
	MaxEntries int `yaml:"maxEntries"`
}

func (m MetadataConfig) TTL() time.Duration {
	return time.Duration(m.TTLSeconds) * time.Second
}

type ImportConfig struct {
	Concurrency            int    `yaml:"concurrency"`
	ClearMissingAttributes bool   `yaml:"clearMissingAttributes"`
	Delimiter              string `yaml:"delimiter"`
}

type Config struct {
	Store    StoreConfig       `yaml:"store"`
	Metadata MetadataConfig    `yaml:"metadata"`
	Import   ImportConfig      `yaml:"import"`
	Aliases  blueprint.Aliases `yaml:"aliases"`
}

func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			RateLimit:      10,
			RateBurst:      5,
			TimeoutSeconds: 60,
		},
		Metadata: MetadataConfig{
			TTLSeconds: int(metadata.DefaultTTL.Seconds()),
			MaxEntries: metadata.DefaultMaxEntries,
		},
		Import: ImportConfig{
			Concurrency: importer.DefaultConcurrency,
		},
		Aliases: blueprint.DefaultAliases(),
	}
}

// LoadConfiguration reads a yaml configuration. Settings missing from the
// input keep their default values.
func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(buf, cfg)
	if err != nil {
		return nil, err
	}

	cfg.Aliases = cfg.Aliases.WithDefaults()

	return cfg, nil
}
