// Package main generates caller-token keys and mints caller tokens.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/homerun/internal/platform/config"
	"github.com/louisbranch/homerun/internal/tools/callertoken"
)

func main() {
	cfg, err := callertoken.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := callertoken.Run(cfg, os.Stdout, nil, nil); err != nil {
		config.Exitf("caller token: %v", err)
	}
}
