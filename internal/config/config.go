// Package config loads the uaWalker configuration: endpoint, identity,
// logging, and the traversal/search budgets.
package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

type Logger struct {
	Level            string `mapstructure:"level"`
	Format           string `mapstructure:"format"`
	DisableTimestamp bool   `mapstructure:"disable_timestamp"`
}

type Auth struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// Search holds the progressive search budgets. The defaults keep the
// worst-case work of the deep pass constant regardless of server size.
type Search struct {
	QuickDepth int `mapstructure:"quick_depth"`
	BroadDepth int `mapstructure:"broad_depth"`
	MaxNodes   int `mapstructure:"max_nodes"`
	MaxQueue   int `mapstructure:"max_queue"`
}

type Cfg struct {
	Endpoint      string `mapstructure:"endpoint"`
	Auth          Auth   `mapstructure:"auth"`
	LoggerConfig  Logger `mapstructure:"logger"`
	SearchConfig  Search `mapstructure:"search"`
	CacheTTL      int    `mapstructure:"cache_ttl_seconds"`
	BrowseWorkers int    `mapstructure:"browse_workers"`
}

var defaultConfig = []byte(`
{
	"endpoint": "opc.tcp://localhost:4840",

	"auth": {
		"username": "",
		"password": "",
		"cert_file": "",
		"key_file": ""
	},

	"logger": {
		"level": "info",
		"format": "TEXT",
		"disable_timestamp": false
	},

	"search": {
		"quick_depth": 3,
		"broad_depth": 5,
		"max_nodes": 500,
		"max_queue": 200
	},

	"cache_ttl_seconds": 30,
	"browse_workers": 8
}
`)

// GetConfigs loads the defaults and merges ./configs/config.json over
// them when present. An explicit path overrides the search paths; a
// missing file is not an error, a malformed one is.
func GetConfigs(path string) (Cfg, error) {
	var configs Cfg
	v := viper.New()
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return configs, fmt.Errorf("loading default configs: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath("./configs/")
	v.AddConfigPath(".")
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return configs, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found; defaults apply.
	}

	if err := v.Unmarshal(&configs); err != nil {
		return configs, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return configs, nil
}
