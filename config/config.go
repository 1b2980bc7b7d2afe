package config

import (
	"bytes"
	"os"

	"github.com/linkboard/linkboard/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"
)

func init() {
	for _, v := range DefaultSetting {
		viper.SetDefault(v.Name, v.Value)
	}
}

// Config is one config entry for linkboard.
type Config struct {
	Name        string    // config name
	Value       any       // config default value
	WarnDefault bool      // show warning if unchanged
	Checker     func(any) // config checker
}

var DefaultSetting = []*Config{
	{Name: "debug", Value: false, Checker: func(v any) {
		if !v.(bool) {
			gin.SetMode(gin.ReleaseMode)
		} else {
			log.New().Warn("Debug mode is on, make it off when put into production")
		}
	}},
	{Name: "database.driver", Value: "sqlite", Checker: func(v any) {
		switch v.(string) {
		case "sqlite", "mysql", "postgres":
		default:
			log.New().Fatalf("Database driver %v not supported", v)
		}
	}},
	{Name: "database.file", Value: "data.db"},
	{Name: "database.host", Value: "127.0.0.1"},
	{Name: "database.port", Value: 0},
	{Name: "database.name", Value: "linkboard"},
	{Name: "database.username", Value: ""},
	{Name: "database.password", Value: ""},
	{Name: "listen.address", Value: "0.0.0.0:8080"},
	{Name: "log.console", Value: true},
	{Name: "log.file", Value: ""},
	{Name: "log.json", Value: false},
	{Name: "log.stack", Value: false},
}

// Load reads YAML config from path and runs every checker.
func Load(path string) error {
	viper.SetConfigType("yml")
	content, err := os.ReadFile(path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err = viper.ReadConfig(bytes.NewBuffer(content)); err != nil {
		return tracerr.Wrap(err)
	}
	for _, v := range DefaultSetting {
		if v.WarnDefault && viper.Get(v.Name) == v.Value {
			log.New().Warnf("Setting %v is default, change it in production", v.Name)
		}
		if v.Checker != nil {
			v.Checker(viper.Get(v.Name))
		}
	}
	return nil
}
