package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/podview/podview-cli/pkg/config"
	"github.com/podview/podview-cli/pkg/log"
	"github.com/podview/podview-cli/pkg/ui"
)

func main() {
	kubeconfig := flag.String("kubeconfig", "", "Path to kubeconfig (defaults to standard resolution)")
	flag.Parse()

	if err := log.Init("podview"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Errorf("Failed to load config: %v", err)
		cfg = config.NewDefaultConfig()
	}
	if *kubeconfig != "" {
		cfg.Kubeconfig = *kubeconfig
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("PANIC RECOVERED: %v\n%s", r, debug.Stack())
			fmt.Fprintln(os.Stderr, "podview crashed due to a panic. Details have been logged.")
			os.Exit(1)
		}
	}()

	app, err := ui.NewApp(cfg)
	if err != nil {
		log.Errorf("Failed to connect to cluster: %v", err)
		fmt.Fprintf(os.Stderr, "Failed to connect to cluster: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	log.Infof("podview exited cleanly")
}
