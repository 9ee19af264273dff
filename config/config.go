package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Server struct {
	Host string
	Port int
}

type DB struct {
	Driver string
	Path   string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Storage struct {
	Root  string
	Watch bool
}

type History struct {
	Path string
}

type Session struct {
	Secret string
	Issuer string
	ExpMin int
}

type Config struct {
	Server  Server
	DB      DB
	Storage Storage
	History History
	Session Session
}

// Load reads the YAML config at path. A missing file is not an error:
// every key has a default, matching the zero-config local workflow.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "repos.db")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "repohub")
	v.SetDefault("storage.root", "uploads")
	v.SetDefault("storage.watch", false)
	v.SetDefault("history.path", "change_history.txt")
	v.SetDefault("session.issuer", "repohub")
	v.SetDefault("session.exp_min", 60)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server:  Server{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB:      DB{Driver: v.GetString("db.driver"), Path: v.GetString("db.path"), Host: v.GetString("db.host"), Port: v.GetInt("db.port"), User: v.GetString("db.user"), Pass: v.GetString("db.pass"), Name: v.GetString("db.name")},
		Storage: Storage{Root: v.GetString("storage.root"), Watch: v.GetBool("storage.watch")},
		History: History{Path: v.GetString("history.path")},
		Session: Session{Secret: v.GetString("session.secret"), Issuer: v.GetString("session.issuer"), ExpMin: v.GetInt("session.exp_min")},
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "dev-secret"
	}
	if cfg.Session.ExpMin <= 0 {
		cfg.Session.ExpMin = 60
	}
	return cfg, nil
}
