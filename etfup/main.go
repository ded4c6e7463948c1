package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/etfup/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	log "github.com/sirupsen/logrus"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, relying on environment variables")
	}
}

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
		"v":      predict.Nothing,
	},
	Sub: map[string]*complete.Command{
		"update": {Flags: map[string]complete.Predictor{
			"doc":           predict.Files("*.html"),
			"dry-run":       predict.Nothing,
			"report":        predict.Nothing,
			"prices":        predict.Set{"yahoo", "eodhd"},
			"eodhd-api-key": predict.Something,
			"cache":         predict.Nothing,
		}},
		"show": {Flags: map[string]complete.Predictor{
			"doc": predict.Files("*.html"),
		}},
		"returns": {Flags: map[string]complete.Predictor{
			"prices":        predict.Set{"yahoo", "eodhd"},
			"eodhd-api-key": predict.Something,
			"cache":         predict.Nothing,
		}},
	},
}

func main() {
	name := path.Base(os.Args[0])
	completion.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}
