/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config holds tool defaults, overridable through DBEXPLORE_*
// environment variables. Command-line flags take precedence over both.
package config

import "github.com/spf13/viper"

// Config holds the tool-wide defaults.
type Config struct {
	Format      string
	MaxWidth    int
	BrowseLimit int
	SearchLimit int
}

// Load resolves defaults from the environment. Recognized variables:
// DBEXPLORE_FORMAT, DBEXPLORE_MAX_WIDTH, DBEXPLORE_BROWSE_LIMIT,
// DBEXPLORE_SEARCH_LIMIT.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("dbexplore")
	v.AutomaticEnv()

	v.SetDefault("format", "text")
	v.SetDefault("max_width", 40)
	v.SetDefault("browse_limit", 50)
	v.SetDefault("search_limit", 100)

	return &Config{
		Format:      v.GetString("format"),
		MaxWidth:    v.GetInt("max_width"),
		BrowseLimit: v.GetInt("browse_limit"),
		SearchLimit: v.GetInt("search_limit"),
	}
}
