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
	Host      string    `koanf:"host"`
	Server    Server    `koanf:"server"`
	Google    Google    `koanf:"google"`
	Timezone  string    `koanf:"timezone"`
	Reminders Reminders `koanf:"reminders"`
}

type Server struct {
	Addr            string `koanf:"addr"`
	SessionTTLHours int    `koanf:"sessionttlhours"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Reminders struct {
	LookAheadMinutes     int `koanf:"lookaheadminutes"`
	CheckIntervalMinutes int `koanf:"checkintervalminutes"`
	StartupDelaySeconds  int `koanf:"startupdelayseconds"`
	DigestHour           int `koanf:"digesthour"`
	MaxNotified          int `koanf:"maxnotified"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:8181",
		Server: Server{
			Addr:            ":8181",
			SessionTTLHours: 24,
		},
		Timezone: "America/Mexico_City",
		Reminders: Reminders{
			LookAheadMinutes:     30,
			CheckIntervalMinutes: 60,
			StartupDelaySeconds:  5,
			DigestHour:           8,
			MaxNotified:          1000,
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
		Prefix: "AVISOBOT_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "AVISOBOT_")), "_", ".")
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
