// Package main reports translation coverage of the error message catalogs.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/homerun/internal/platform/config"
	"github.com/louisbranch/homerun/internal/tools/i18nstatus"
)

func main() {
	jsonOutput := flag.Bool("json", false, "output JSON instead of markdown")
	flag.Parse()
	if err := i18nstatus.Run(os.Stdout, *jsonOutput); err != nil {
		config.Exitf("i18n status: %v", err)
	}
}
