package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"newtab-go/pkg/cli"
	"newtab-go/pkg/cli/format"
	"newtab-go/pkg/config"
)

func main() {
	var (
		listMode    = flag.Bool("list", false, "List all shortcuts")
		addMode     = flag.Bool("add", false, "Add a shortcut (use -name and -url to fill it in)")
		name        = flag.String("name", "", "Name for -add")
		rawURL      = flag.String("url", "", "URL for -add")
		deleteIndex = flag.Int("delete", -1, "Delete the shortcut at this index")
		resetMode   = flag.Bool("reset", false, "Restore the default shortcuts")
		register    = flag.String("register", "", "Register a new browser profile with this name")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := cli.NewApp(cfg)

	// Handle config commands first (don't need the API)
	if *configShow {
		exitOnError(app.ShowConfig())
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			log.Fatalf("failed to set config: %v", err)
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	switch {
	case *register != "":
		exitOnError(app.RegisterProfile(*register))
	case *listMode:
		exitOnError(app.ListShortcuts())
	case *addMode:
		exitOnError(app.AddShortcut(*name, *rawURL))
	case *deleteIndex >= 0:
		exitOnError(app.DeleteShortcut(*deleteIndex))
	case *resetMode:
		exitOnError(app.ResetShortcuts())
	default:
		exitOnError(app.Run())
	}
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	format.WriteToStderr(format.FormatErrorMessage(err))
	os.Exit(1)
}
