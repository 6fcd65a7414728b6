/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names read by FromEnv.
const (
	EnvSeed        = "FACTORY_SEED"
	EnvLogLevel    = "FACTORY_LOG_LEVEL"
	EnvDefinitions = "FACTORY_DEFINITIONS"
	EnvSQLiteDSN   = "FACTORY_SQLITE_DSN"

	EnvAWSAccessKey   = "AWS_ACCESS_KEY"
	EnvAWSSecretKey   = "AWS_SECRET_KEY"
	EnvAWSRegion      = "AWS_REGION"
	EnvAWSDDBTable    = "AWS_DDB_TABLE"
	EnvAWSDDBEndpoint = "AWS_DDB_ENDPOINT"
)

// DefaultSQLiteDSN keeps a private in-memory database per store.
const DefaultSQLiteDSN = "file::memory:"

// Config holds the settings a test suite needs to build a factory and its
// persistence backends.
type Config struct {
	// Seed seeds the value source. Zero picks a random seed.
	Seed int64
	// LogLevel is a logrus level name.
	LogLevel string
	// DefinitionFiles lists YAML blueprint files to load.
	DefinitionFiles []string
	// SQLiteDSN is the data source for the sqlite datastore.
	SQLiteDSN string
	// DynamoDB configures the DynamoDB datastore.
	DynamoDB DynamoDB
}

// DynamoDB holds the connection settings for the ddb datastore.
type DynamoDB struct {
	AccessKey string
	SecretKey string
	Region    string
	Table     string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// Enabled reports whether a table has been configured.
func (d DynamoDB) Enabled() bool {
	return d.Table != ""
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and then builds a Config from it. A missing default
// .env file is not an error; a missing named file is.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env files %v: %w", envFiles, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:  getenv(EnvLogLevel, logrus.InfoLevel.String()),
		SQLiteDSN: getenv(EnvSQLiteDSN, DefaultSQLiteDSN),
		DynamoDB: DynamoDB{
			AccessKey: os.Getenv(EnvAWSAccessKey),
			SecretKey: os.Getenv(EnvAWSSecretKey),
			Region:    os.Getenv(EnvAWSRegion),
			Table:     os.Getenv(EnvAWSDDBTable),
			Endpoint:  os.Getenv(EnvAWSDDBEndpoint),
		},
	}

	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvSeed, raw, err)
		}
		cfg.Seed = seed
	}

	if raw := os.Getenv(EnvDefinitions); raw != "" {
		for _, path := range strings.Split(raw, ",") {
			if path = strings.TrimSpace(path); path != "" {
				cfg.DefinitionFiles = append(cfg.DefinitionFiles, path)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that can be checked without connecting anywhere.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
	}
	if c.DynamoDB.Enabled() && c.DynamoDB.Region == "" {
		return fmt.Errorf("%s is required when %s is set", EnvAWSRegion, EnvAWSDDBTable)
	}
	return nil
}

// Logger returns a logrus logger at the configured level.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
