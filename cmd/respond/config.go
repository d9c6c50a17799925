package main

import (
	"os"

	"github.com/always-cache/respond"
	"github.com/always-cache/respond/pkg/logging"
	transformer "github.com/always-cache/respond/pkg/response-transformer"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      int               `yaml:"port"`
	Root      string            `yaml:"root"`
	Store     string            `yaml:"store"`
	DB        string            `yaml:"db"`
	Redis     string            `yaml:"redis"`
	Templates string            `yaml:"templates"`
	Response  respond.Config    `yaml:"response"`
	Rules     transformer.Rules `yaml:"rules"`
	Log       logging.Config    `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		Port:  8080,
		Root:  ".",
		Store: "dir",
		DB:    "resources.db",
		Redis: "localhost:6379",
		Response: respond.Config{
			DigestBuffered: true,
		},
	}
}

func getConfig(filename string) (Config, error) {
	config := defaultConfig()
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrap(err, "reading config")
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, errors.Wrap(err, "parsing config")
}
