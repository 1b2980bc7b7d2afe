package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/ztrue/tracerr"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared connection, set by Init.
var DB *gorm.DB

// Config is connection config for database.
type Config struct {
	Driver   string // sqlite/mysql/postgres
	File     string // sqlite file path
	Host     string
	Port     int
	Name     string
	Username string
	Password string
	Verbose  bool // enable statement log
}

// New opens a database connection, the schema is not touched.
func New(conf *Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch conf.Driver {
	case "sqlite":
		dial = sqlite.Open(conf.File)
	case "mysql":
		port := conf.Port
		if port == 0 {
			port = 3306
		}
		dial = mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			conf.Username, conf.Password, conf.Host, port, conf.Name))
	case "postgres":
		port := conf.Port
		if port == 0 {
			port = 5432
		}
		dial = postgres.Open(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			conf.Host, port, conf.Username, conf.Password, conf.Name))
	default:
		return nil, tracerr.Errorf("database driver %v not supported", conf.Driver)
	}

	level := logger.Silent
	if conf.Verbose {
		level = logger.Info
	}
	ret, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	return ret, tracerr.Wrap(err)
}

// Init opens the shared connection and migrates the schema.
func Init(conf *Config) error {
	conn, err := New(conf)
	if err != nil {
		return err
	}
	if err := Migrate(conn); err != nil {
		return err
	}
	DB = conn
	return nil
}

// Migrate creates or upgrades the schema on conn.
func Migrate(conn *gorm.DB) error {
	return tracerr.Wrap(conn.AutoMigrate(models()...))
}
