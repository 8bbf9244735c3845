package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"
)

// DatabaseConfig подключение к живой схеме. Dsn, если задан, используется как есть.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"RELGRAPH_DB_DRIVER" env-default:"postgres"`
	Host     string `yaml:"host" env:"RELGRAPH_DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"RELGRAPH_DB_PORT"`
	User     string `yaml:"user" env:"RELGRAPH_DB_USER"`
	Password string `yaml:"password" env:"RELGRAPH_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"RELGRAPH_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"RELGRAPH_DB_SSLMODE" env-default:"disable"`
	Schema   string `yaml:"schema" env:"RELGRAPH_DB_SCHEMA"`
	Path     string `yaml:"path" env:"RELGRAPH_DB_PATH"`
	DSN      string `yaml:"dsn" env:"RELGRAPH_DB_DSN"`
}

type PathsConfig struct {
	ModelsDir    string `yaml:"models_dir" env:"RELGRAPH_MODELS_DIR" env-default:"app/Models"`
	FactoriesDir string `yaml:"factories_dir" env:"RELGRAPH_FACTORIES_DIR" env-default:"database/factories"`
	// SchemaFile DDL-файл вместо подключения к базе
	SchemaFile string `yaml:"schema_file" env:"RELGRAPH_SCHEMA_FILE"`
}

type ModelsConfig struct {
	Namespace string `yaml:"namespace" env:"RELGRAPH_MODELS_NAMESPACE" env-default:"\\App\\Models"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Paths    PathsConfig    `yaml:"paths"`
	Models   ModelsConfig   `yaml:"models"`
}

var defaultPorts = map[string]int{
	"postgres":  5432,
	"pgx":       5432,
	"mysql":     3306,
	"sqlserver": 1433,
}

func (db *DatabaseConfig) port() int {
	if db.Port != 0 {
		return db.Port
	}
	return defaultPorts[db.Driver]
}

func (db *DatabaseConfig) address() string {
	return net.JoinHostPort(db.Host, strconv.Itoa(db.port()))
}

// GetConnectionString строит DSN в формате выбранного драйвера
func (db *DatabaseConfig) GetConnectionString() string {
	if db.DSN != "" {
		return db.DSN
	}
	switch db.Driver {
	case "mysql":
		c := mysql.NewConfig()
		c.User = db.User
		c.Passwd = db.Password
		c.Net = "tcp"
		c.Addr = db.address()
		c.DBName = db.DBName
		return c.FormatDSN()
	case "sqlite":
		return db.Path
	case "sqlserver":
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(db.User, db.Password),
			Host:     db.address(),
			RawQuery: url.Values{"database": {db.DBName}}.Encode(),
		}
		return u.String()
	default:
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			db.Host,
			db.port(),
			db.User,
			db.Password,
			db.DBName,
			db.SSLMode,
		)
	}
}

// LoadConfig читает YAML и накладывает переменные окружения.
// Отсутствующий файл не ошибка: берутся значения по умолчанию.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, errors.Wrapf(err, "read config %s", path)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	return &cfg, nil
}

func GetDefaultConfigPath() string {
	dir, _ := os.Getwd()
	return filepath.Join(dir, "config.yaml")
}
