package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Listen   string   `koanf:"listen"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
	Supply   Supply   `koanf:"supply"`
	// Zones maps a zone code (e.g. "A") to the ranches belonging to it.
	// Entries may be ranch ids or ranch names; names are resolved through
	// the catalog at query time.
	Zones map[string][]string `koanf:"zones"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Supply struct {
	// SelectionStrategy picks the recipe resolution mode: "temporalidad"
	// (seasonality only) or "temporalidad_siembra" (seasonality plus
	// sowing-type matching against the planting's ranch).
	SelectionStrategy string `koanf:"selectionstrategy"`
	// StrictSeasonality rejects malformed seasonality expressions on
	// recipe writes instead of silently skipping bad tokens.
	StrictSeasonality bool `koanf:"strictseasonality"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host:   "http://localhost:3000",
		Listen: ":8080",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "agroplan",
			Pass:   "",
			Name:   "agroplan",
			Schema: "agroplan",
		},
		Supply: Supply{
			SelectionStrategy: "temporalidad",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "AGROPLAN_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "AGROPLAN_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
