package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type session struct {
	NotificationTTL time.Duration   `mapstructure:"notification_ttl"`
	CompareCapacity int             `mapstructure:"compare_capacity"`
	PriceCeiling    decimal.Decimal `mapstructure:"price_ceiling"`
}

type Slide struct {
	Title    string `mapstructure:"title"`
	Subtitle string `mapstructure:"subtitle"`
	ImageRef string `mapstructure:"image_ref"`
	CTA      string `mapstructure:"cta"`
	Badge    string `mapstructure:"badge"`
}

type carousel struct {
	Interval time.Duration `mapstructure:"interval"`
	Slides   []Slide       `mapstructure:"slides"`
}

type topics struct {
	SessionActivity string `mapstructure:"session_activity"`
}

type tlsFiles struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type broker struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	CatalogFile    string     `mapstructure:"catalog_file"`
	Session        session    `mapstructure:"session"`
	Carousel       carousel   `mapstructure:"carousel"`
	Broker         broker     `mapstructure:"broker"`
}

// Load reads the file named by the --config flag or STOREFRONT_CONFIG_FILE
// and exits the process on failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads path over the defaults. An empty path yields the defaults.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			numberToDecimalHook(),
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("catalog_file", "")
	v.SetDefault("session.notification_ttl", 3*time.Second)
	v.SetDefault("session.compare_capacity", 3)
	v.SetDefault("session.price_ceiling", "0")
	v.SetDefault("carousel.interval", 6*time.Second)
	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.topics.session_activity", "storefront-session-activity")
}

// numberToDecimalHook decodes YAML numbers into decimal.Decimal.
// Strings are left to the TextUnmarshaler hook.
func numberToDecimalHook() mapstructure.DecodeHookFuncType {
	decimalType := reflect.TypeOf(decimal.Decimal{})
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != decimalType {
			return data, nil
		}
		switch n := data.(type) {
		case int:
			return decimal.NewFromInt(int64(n)), nil
		case int64:
			return decimal.NewFromInt(n), nil
		case float64:
			return decimal.NewFromFloat(n), nil
		}
		return data, nil
	}
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file, defaults are used when empty")
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
	CatalogFile=%q

	Session:
	NotificationTTL=%q
	CompareCapacity=%d
	PriceCeiling=%q

	Carousel:
	Interval=%q
	Slides=%d

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		SessionActivity=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CatalogFile,
		c.Session.NotificationTTL,
		c.Session.CompareCapacity,
		c.Session.PriceCeiling,
		c.Carousel.Interval,
		len(c.Carousel.Slides),
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.CAFile != "" || c.Broker.TLS.CertFile != "",
		c.Broker.Topics.SessionActivity,
	)
}
