package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type topics struct {
	OrderPlaced string `mapstructure:"order_placed"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type storefront struct {
	HTTPServerAddr string `mapstructure:"http_server_addr"`
	OrderAPIURL    string `mapstructure:"order_api_url"`
	CartStoreAddr  string `mapstructure:"cart_store_addr"`
	StaticDir      string `mapstructure:"static_dir"`
}

type orderAPI struct {
	HTTPServerAddr   string `mapstructure:"http_server_addr"`
	TurnstileURL     string `mapstructure:"turnstile_url"`
	TurnstileSecret  string `mapstructure:"turnstile_secret"`
	BusinessTimezone string `mapstructure:"business_timezone"`
}

type Config struct {
	LogLevel   slog.Level `mapstructure:"log_level"`
	SQLDB      string     `mapstructure:"sql_db"`
	Storefront storefront `mapstructure:"storefront"`
	OrderAPI   orderAPI   `mapstructure:"order_api"`
	Broker     broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
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
	SQLDB=%q

	Storefront:
	HTTPServerAddr=%q
	OrderAPIURL=%q
	CartStoreAddr=%q
	StaticDir=%q

	OrderAPI:
	HTTPServerAddr=%q
	TurnstileURL=%q
	BusinessTimezone=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		OrderPlaced=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.SQLDB,
		c.Storefront.HTTPServerAddr,
		c.Storefront.OrderAPIURL,
		c.Storefront.CartStoreAddr,
		c.Storefront.StaticDir,
		c.OrderAPI.HTTPServerAddr,
		c.OrderAPI.TurnstileURL,
		c.OrderAPI.BusinessTimezone,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.OrderPlaced,
	)
}
