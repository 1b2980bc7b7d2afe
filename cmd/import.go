package cmd

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/linkboard/linkboard/handler"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/spf13/cobra"
	"github.com/ztrue/tracerr"
)

var importCmd = &cobra.Command{
	Use:    "import $file",
	Short:  "Import links from CSV file",
	Args:   cobra.ExactArgs(1),
	PreRun: load,
	Run:    runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// csvColumns are required in the header row, order does not matter.
var csvColumns = []string{
	"page", "section", "name", "description", "url", "logo", "background", "color",
}

func runImport(cmd *cobra.Command, args []string) {
	records, err := readCSV(args[0])
	if err != nil {
		log.NewEntry(err).Fatal("Failed to read CSV")
	}
	result, err := handler.Import.Batch(records)
	if err != nil {
		log.NewEntry(err).Fatal("Import failed, nothing committed")
	}
	log.New().WithFields(log.F{
		"pages":    result.Pages,
		"sections": result.Sections,
		"links":    result.Links,
	}).Info("Import complete")
}

func readCSV(path string) ([]*handler.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range csvColumns {
		if _, ok := col[name]; !ok {
			return nil, tracerr.Errorf("missing required column %v", name)
		}
	}

	var ret []*handler.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		ret = append(ret, &handler.Record{
			Page:        row[col["page"]],
			Section:     row[col["section"]],
			Name:        row[col["name"]],
			Description: row[col["description"]],
			URL:         row[col["url"]],
			Logo:        row[col["logo"]],
			Background:  row[col["background"]],
			Color:       row[col["color"]],
		})
	}
	return ret, nil
}
