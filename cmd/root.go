package cmd

import (
	"io"
	"os"

	"github.com/linkboard/linkboard/config"
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "linkboard",
	Short: "Group scoped link dashboard",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Load(conf); err != nil {
			log.NewEntry(err).Fatal("Failed to load config")
		}
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if viper.GetBool("log.json") {
			log.SetJSONFormat()
		} else {
			log.SetTextFormat()
		}
		if viper.GetBool("log.stack") {
			log.ShowStack()
		}
		initLogOutput()
	},
}

var conf string
var verbose bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&conf, "conf", "c", "conf.yml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show verbose")
}

func initLogOutput() {
	var out []io.Writer
	if viper.GetBool("log.console") {
		out = append(out, os.Stdout)
	}
	if path := viper.GetString("log.file"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.NewEntry(err).Fatal("Failed to open log file")
		}
		out = append(out, f)
	}
	log.SetOutput(out...)
}

// load connects the database and binds every handler, shared by all
// subcommands that touch the store.
func load(cmd *cobra.Command, args []string) {
	if err := db.Init(&db.Config{
		Driver:   viper.GetString("database.driver"),
		File:     viper.GetString("database.file"),
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		Name:     viper.GetString("database.name"),
		Username: viper.GetString("database.username"),
		Password: viper.GetString("database.password"),
		Verbose:  verbose,
	}); err != nil {
		log.NewEntry(err).Fatal("Failed to connect database")
	}
	handler.Init()
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
