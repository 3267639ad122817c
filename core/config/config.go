/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Piptable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads settings for the piptable demo server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/google/piptable/core/controller"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Table  TableConfig
	Data   DataConfig
	Log    LogConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr    string
	WasmDir string `mapstructure:"wasm_dir"`
}

// TableConfig holds the default controller options.
type TableConfig struct {
	ItemsPerPage int `mapstructure:"items_per_page"`
	Sortable     bool
	Searchable   bool
	Paginated    bool
	Locale       string
}

// DataConfig selects the dataset shown by the demo.
type DataConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// PIPTABLE_, e.g. PIPTABLE_SERVER_ADDR.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	cfgPath := os.Getenv("PIPTABLE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "piptable"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PIPTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit path must exist; the default location is optional.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8097")
	v.SetDefault("server.wasm_dir", "")
	v.SetDefault("table.items_per_page", controller.DefaultItemsPerPage)
	v.SetDefault("table.sortable", true)
	v.SetDefault("table.searchable", true)
	v.SetDefault("table.paginated", true)
	v.SetDefault("table.locale", "und")
	v.SetDefault("data.csv_path", "")
	v.SetDefault("log.level", "info")
}

// Controller converts the table section into controller options. An
// unparsable locale falls back to the root collation.
func (t TableConfig) Controller() controller.Config {
	tag, err := language.Parse(t.Locale)
	if err != nil {
		tag = language.Und
	}
	return controller.Config{
		ItemsPerPage: t.ItemsPerPage,
		Sortable:     t.Sortable,
		Searchable:   t.Searchable,
		Paginated:    t.Paginated,
		Locale:       tag,
	}
}

// Logger builds a console logger at the configured level. Unknown levels
// fall back to info.
func (l LogConfig) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
