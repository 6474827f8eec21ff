package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "TRIPBUDGET_"

type StorageDriver string

const (
	StoragePostgres StorageDriver = "postgres"
	StorageRedis    StorageDriver = "redis"
	StorageMemory   StorageDriver = "memory"
)

type Application struct {
	Host     string   `koanf:"host"`
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Storage  Storage  `koanf:"storage"`
	Redis    Redis    `koanf:"redis"`
	Gemini   Gemini   `koanf:"gemini"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Name     string `koanf:"name"`
	Schema   string `koanf:"schema"`
	SslMode  string `koanf:"sslmode"`
	MaxConns int32  `koanf:"maxconns"`
	MinConns int32  `koanf:"minconns"`
}

type Storage struct {
	Driver StorageDriver `koanf:"driver"`
}

type Redis struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type Gemini struct {
	ApiKey  string `koanf:"apikey"`
	Model   string `koanf:"model"`
	BaseUrl string `koanf:"baseurl"`

	// Timeout is applied per generation request.
	Timeout       time.Duration `koanf:"timeout"`
	RatePerMinute int           `koanf:"rateperminute"`
	Burst         int           `koanf:"burst"`

	// UseDefaultCredentials authenticates with Google application default credentials instead of ApiKey.
	UseDefaultCredentials bool `koanf:"usedefaultcredentials"`
}

var ErrUnknownStorageDriver = errors.New("unknown storage driver")

func Defaults() Application {
	return Application{
		Host:   "http://localhost:3000",
		Server: Server{Port: 8181},
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "tripbudget",
			Pass:     "",
			Name:     "tripbudget",
			Schema:   "tripbudget",
			SslMode:  "disable",
			MaxConns: 10,
			MinConns: 2,
		},
		Storage: Storage{Driver: StoragePostgres},
		Redis: Redis{
			Host: "localhost",
			Port: 6379,
		},
		Gemini: Gemini{
			Model:         "gemini-1.5-flash",
			Timeout:       30 * time.Second,
			RatePerMinute: 30,
			Burst:         5,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and TRIPBUDGET_ env vars,
// in that order of precedence. A .env file in the working directory is read into the environment first.
func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
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

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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

	switch app.Storage.Driver {
	case StoragePostgres, StorageRedis, StorageMemory:
	default:
		return Application{}, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, app.Storage.Driver)
	}

	return app, nil
}
