package config

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	LogZapMode               string `mapstructure:"LOG_ZAP_MODE"`
	PrintConfigurationToLogs string `mapstructure:"PRINT_CONFIGURATION_TO_LOGS"`

	RpcUrl            string `mapstructure:"RPC_URL"`
	RpcApiKey         string `mapstructure:"RPC_API_KEY" json:"-"`
	RpcTimeoutSeconds uint64 `mapstructure:"RPC_TIMEOUT_SECONDS"`

	DatabaseDriver  string `mapstructure:"DATABASE_DRIVER"`
	DatabaseUrl     string `mapstructure:"DATABASE_URL"`
	LogCachePath    string `mapstructure:"LOG_CACHE_PATH"`
	MetricsTextfile string `mapstructure:"METRICS_TEXTFILE"`

	TokenContract     string `mapstructure:"TOKEN_CONTRACT"`
	OriginDistributor string `mapstructure:"ORIGIN_DISTRIBUTOR"`
	DexRouter         string `mapstructure:"DEX_ROUTER"`
	LiquidityPool     string `mapstructure:"LIQUIDITY_POOL"`
	OffRampWallet     string `mapstructure:"OFF_RAMP_WALLET"`
	SeedFromBlock     uint64 `mapstructure:"SEED_FROM_BLOCK"`
	SeedToBlock       uint64 `mapstructure:"SEED_TO_BLOCK"`
}

var lock = &sync.Mutex{}
var config *Config

var Get = get

func get() Config {
	if config == nil {
		lock.Lock()
		defer lock.Unlock()
		if config == nil {
			c := loadConfig()
			config = &c
		}
	}
	return *config
}

func loadConfig() Config {
	viperAddConfigFile()
	viperAddEnv()
	viperAddDefaults()
	cfg := initializeCfg()
	debugConfig(cfg)
	return cfg
}

func viperAddConfigFile() {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
}

func viperAddEnv() {
	viper.AutomaticEnv()
	// This makes sure that all envs are binded even if they are not represented in config file (https://github.com/spf13/viper/issues/584)
	valueOfConfig := reflect.ValueOf(&Config{}).Elem()
	fieldsOfConfig := reflect.TypeOf(&Config{}).Elem()
	for i := 0; i < valueOfConfig.NumField(); i++ {
		field, _ := fieldsOfConfig.FieldByName(valueOfConfig.Type().Field(i).Name)
		mapStructureVal := field.Tag.Get("mapstructure")
		err := viper.BindEnv(mapStructureVal)
		if err != nil {
			panic(fmt.Sprintf("Error binding env val '%v': %v", mapStructureVal, err))
		}
	}
}

// Addresses and seed blocks stay empty when unset; the airdrop package owns their defaults.
func viperAddDefaults() {
	viper.SetDefault("RPC_TIMEOUT_SECONDS", 600)
	viper.SetDefault("DATABASE_DRIVER", "sqlite3")
	viper.SetDefault("DATABASE_URL", "./db/sqlite/airdrop")
}

func initializeCfg() Config {
	var cfg Config
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		} else {
			panic(fmt.Sprintf("fatal error reading config file: %v", err))
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		panic(fmt.Sprintf("error unmarshaling config: %v", err))
	}
	return cfg
}

func debugConfig(cfg Config) {
	if cfg.PrintConfigurationToLogs == "true" {
		b, err := json.Marshal(cfg)
		var result string
		if err != nil {
			result = "[FAILED TO CONVERT CONF TO STRING]"
		} else {
			result = string(b)
		}
		log.Printf("[APP CONFIGURATION]: %v\n", result)
	}
}
