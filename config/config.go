package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "PRICECOMPARE_CONFIG_FILE"

const (
	CatalogSourceMemory   = "memory"
	CatalogSourcePostgres = "postgres"
)

type catalog struct {
	Source string `mapstructure:"source"`
	SQLDB  string `mapstructure:"sql_db"`
}

type consumers struct {
	PopularSearchesGroup string `mapstructure:"popular_searches_group"`
}

type topics struct {
	SearchEvents string `mapstructure:"search_events"`
}

type brokerTLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	Enabled            bool      `mapstructure:"enabled"`
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                brokerTLS `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	RequestTimeout time.Duration `mapstructure:"http_request_timeout"`
	SearchDelay    time.Duration `mapstructure:"search_delay"`
	HistoryDelay   time.Duration `mapstructure:"history_delay"`
	Catalog        catalog       `mapstructure:"catalog"`
	Broker         broker        `mapstructure:"broker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("http_request_timeout", 5*time.Second)
	v.SetDefault("search_delay", 1500*time.Millisecond)
	v.SetDefault("history_delay", 500*time.Millisecond)
	v.SetDefault("catalog.source", CatalogSourceMemory)
	v.SetDefault("catalog.sql_db", "")
	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.search_events", "search-events")
	v.SetDefault("broker.consumers.popular_searches_group", "popular-searches")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads and validates the config at path.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	err := v.ReadInConfig()
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	err = v.UnmarshalExact(&cfg, viper.DecodeHook(decodeHook()))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeHook accepts level names like "debug" for slog.Level.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func (c Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSourceMemory:
	case CatalogSourcePostgres:
		if c.Catalog.SQLDB == "" {
			return fmt.Errorf("catalog.sql_db: required for %q source", CatalogSourcePostgres)
		}
	default:
		return fmt.Errorf("catalog.source: unknown value %q", c.Catalog.Source)
	}

	if c.SearchDelay < 0 || c.HistoryDelay < 0 {
		return fmt.Errorf("search_delay, history_delay: must not be negative")
	}

	slowest := max(c.SearchDelay, c.HistoryDelay)
	if c.RequestTimeout <= slowest {
		return fmt.Errorf(
			"http_request_timeout: must exceed simulated delay %s", slowest,
		)
	}

	if c.Broker.Enabled {
		if len(c.Broker.SeedBrokers) == 0 {
			return fmt.Errorf("broker.seed_brokers: required when broker is enabled")
		}
		if len(c.Broker.SchemaRegistryURLs) == 0 {
			return fmt.Errorf("broker.schema_registry_urls: required when broker is enabled")
		}
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	RequestTimeout=%q
	SearchDelay=%q
	HistoryDelay=%q

	Catalog:
	Source=%q
	SQLDB=%q

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		SearchEvents=%q
	Consumers:
		PopularSearchesGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.RequestTimeout,
		c.SearchDelay,
		c.HistoryDelay,
		c.Catalog.Source,
		maskDSN(c.Catalog.SQLDB),
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.CA != "",
		c.Broker.Topics.SearchEvents,
		c.Broker.Consumers.PopularSearchesGroup,
	)
}

// maskDSN hides the password part of a postgres URL.
func maskDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	userInfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(userInfo, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":***@" + host
}
