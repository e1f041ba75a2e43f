package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the jobheat service and CLI.
//
// Values are resolved in this order: command line flags, environment
// variables (a .env file is loaded first), the optional YAML file named by
// JOBHEAT_CONFIG, then defaults.
type Config struct {
	Env        string          `yaml:"env"`         // Env is the current environment: local, development, production.
	Port       int             `yaml:"port"`        // Port is the public jobs API port.
	HealthPort int             `yaml:"health_port"` // HealthPort is the monitoring server port.
	APIURL     string          `yaml:"api_url"`     // APIURL is the jobs API base URL used by the summary command.
	Store      StoreConfig     `yaml:"store"`       // Store selects and configures the record store.
	Geocoding  GeocodingConfig `yaml:"geocoding"`   // Geocoding configures coordinate enrichment.
	ImportLock string          `yaml:"import_lock"` // ImportLock is the lock file guarding concurrent imports.
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Type       string         `yaml:"type"`        // Type is one of mongo, postgres, sqlite.
	Mongo      MongoConfig    `yaml:"mongo"`       // Mongo holds the document store settings.
	Database   PostgresConfig `yaml:"postgres"`    // Database holds the postgres database configuration.
	SQLitePath string         `yaml:"sqlite_path"` // SQLitePath is the database file for the sqlite store.
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// GeocodingConfig configures the background geocoding worker and the importer.
type GeocodingConfig struct {
	Enabled       bool          `yaml:"enabled"`        // Enabled starts the background worker in serve.
	ProviderType  string        `yaml:"provider"`       // ProviderType is one of static, google, nominatim.
	APIKey        string        `yaml:"api_key"`        // APIKey is required by the google provider.
	RateLimit     int           `yaml:"rate_limit"`     // RateLimit is requests per second for the google provider.
	Workers       int           `yaml:"workers"`        // Workers is the number of concurrent geocoding workers.
	Interval      time.Duration `yaml:"interval"`       // Interval is the time between store polls.
	AddressSuffix string        `yaml:"address_suffix"` // AddressSuffix is appended to locations before geocoding.
}

// binding maps a viper key to its environment variable, default and flag.
type binding struct {
	key  string
	env  string
	def  string
	flag string
}

var bindings = []binding{
	{"env", "JOBHEAT_ENV", "production", "env"},
	{"port", "PORT", "5000", "port"},
	{"health_port", "JOBHEAT_HEALTH_PORT", "8080", "health-port"},
	{"api_url", "JOBHEAT_API_URL", "http://localhost:5000", "api-url"},
	{"import_lock", "JOBHEAT_IMPORT_LOCK", filepath.Join(os.TempDir(), "jobheat-import.lock"), ""},
	{"store.type", "JOBHEAT_STORE", "mongo", "store"},
	{"store.mongo.uri", "MONGODB_URI", "", ""},
	{"store.mongo.database", "MONGODB_DATABASE", "jobheatmap", ""},
	{"store.mongo.collection", "MONGODB_COLLECTION", "jobs", ""},
	{"store.postgres.host", "DB_HOST", "", ""},
	{"store.postgres.port", "DB_PORT", "5432", ""},
	{"store.postgres.user", "DB_USERNAME", "", ""},
	{"store.postgres.password", "DB_PASSWORD", "", ""},
	{"store.postgres.db_name", "DB_NAME", "", ""},
	{"store.sqlite_path", "SQLITE_PATH", "jobheat.db", "sqlite-path"},
	{"geocoding.enabled", "JOBHEAT_GEOCODING", "false", "geocoding"},
	{"geocoding.provider", "JOBHEAT_PROVIDER_TYPE", "static", "provider"},
	{"geocoding.api_key", "JOBHEAT_PROVIDER_KEY", "", ""},
	{"geocoding.rate_limit", "JOBHEAT_PROVIDER_RATE", "10", ""},
	{"geocoding.workers", "JOBHEAT_WORKERS", "4", "workers"},
	{"geocoding.interval", "JOBHEAT_INTERVAL", "10m", "interval"},
	{"geocoding.address_suffix", "JOBHEAT_ADDRESS_SUFFIX", ", India", ""},
}

// BindFlags registers the command line overrides on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML configuration file (env JOBHEAT_CONFIG)")
	for _, b := range bindings {
		if b.flag == "" {
			continue
		}
		fs.String(b.flag, b.def, "overrides "+b.env)
	}
}

// MustLoad resolves the configuration and panics when a value cannot be parsed.
// flags may be nil.
func MustLoad(flags *pflag.FlagSet) *Config {
	_ = godotenv.Load()

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		_ = v.BindEnv(b.key, b.env)
		if flags != nil && b.flag != "" {
			if f := flags.Lookup(b.flag); f != nil {
				_ = v.BindPFlag(b.key, f)
			}
		}
	}

	if path := configFile(flags); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("geocoding.interval"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for api server from configuration")
	}

	healthPort, err := strconv.Atoi(v.GetString("health_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("geocoding.workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	rateLimit, err := strconv.Atoi(v.GetString("geocoding.rate_limit"))
	if err != nil {
		panic("failed to parse provider rate limit from configuration")
	}

	enabled, err := strconv.ParseBool(v.GetString("geocoding.enabled"))
	if err != nil {
		panic("failed to parse geocoding switch from configuration")
	}

	return &Config{
		Env:        v.GetString("env"),
		Port:       port,
		HealthPort: healthPort,
		APIURL:     v.GetString("api_url"),
		ImportLock: v.GetString("import_lock"),
		Store: StoreConfig{
			Type: v.GetString("store.type"),
			Mongo: MongoConfig{
				URI:        v.GetString("store.mongo.uri"),
				Database:   v.GetString("store.mongo.database"),
				Collection: v.GetString("store.mongo.collection"),
			},
			Database: PostgresConfig{
				Host:     v.GetString("store.postgres.host"),
				Port:     v.GetString("store.postgres.port"),
				User:     v.GetString("store.postgres.user"),
				Password: v.GetString("store.postgres.password"),
				Name:     v.GetString("store.postgres.db_name"),
			},
			SQLitePath: v.GetString("store.sqlite_path"),
		},
		Geocoding: GeocodingConfig{
			Enabled:       enabled,
			ProviderType:  v.GetString("geocoding.provider"),
			APIKey:        v.GetString("geocoding.api_key"),
			RateLimit:     rateLimit,
			Workers:       workers,
			Interval:      interval,
			AddressSuffix: v.GetString("geocoding.address_suffix"),
		},
	}
}

func configFile(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			return f.Value.String()
		}
	}

	return os.Getenv("JOBHEAT_CONFIG")
}
