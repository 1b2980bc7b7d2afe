package cmd

import (
	"net/http"

	"github.com/linkboard/linkboard/api"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:    "run",
	Short:  "Run linkboard server",
	PreRun: load,
	Run:    run,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) {
	e := gin.New()
	e.Use(log.GinMiddleware(), gin.Recovery())
	api.Init(e)

	addr := viper.GetString("listen.address")
	log.New().WithField("address", addr).Info("Server started")
	if err := http.ListenAndServe(addr, e); err != nil {
		log.NewEntry(err).Fatal("Server stopped")
	}
}
