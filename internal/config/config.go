package config

import (
	"errors"
	"io/fs"
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

const (
	DefaultBaseUrl = "https://fsa-crud-2aa9294fe819.herokuapp.com/api"
	DefaultCohort  = "2506-FTB-CT-WEB-PT"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Api      Api      `koanf:"api"`
	Frontend Frontend `koanf:"frontend"`
	MockApi  MockApi  `koanf:"mockapi"`
	Database Database `koanf:"db"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

// Api points the store client at the remote party API.
type Api struct {
	BaseUrl string `koanf:"baseurl"`
	Cohort  string `koanf:"cohort"`
	// Timeout of zero means requests never time out.
	Timeout time.Duration `koanf:"timeout"`
}

// EventsUrl is the collection endpoint, {baseUrl}/{cohort}/events.
func (a Api) EventsUrl() string {
	return strings.TrimSuffix(a.BaseUrl, "/") + "/" + a.Cohort + "/events"
}

type Frontend struct {
	CreateForm bool `koanf:"createform"`
}

// MockApi controls the in-process emulation of the party API.
type MockApi struct {
	Enabled bool   `koanf:"enabled"`
	Storage string `koanf:"storage"`
	Seed    bool   `koanf:"seed"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Api: Api{
			BaseUrl: DefaultBaseUrl,
			Cohort:  DefaultCohort,
		},
		Frontend: Frontend{
			CreateForm: true,
		},
		MockApi: MockApi{
			Enabled: false,
			Storage: StorageMemory,
			Seed:    true,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "party",
			Pass:   "",
			Name:   "party",
			Schema: "public",
		},
	}
}

// Load merges struct defaults, the YAML file at path and PARTY_* environment variables, in that order.
// A .env file in the working directory, if present, is loaded into the environment first.
func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("could not load .env file: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
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
		Prefix: "PARTY_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PARTY_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.UnmarshalWithConf("", &app, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Application{}, err
	}

	return app, nil
}
