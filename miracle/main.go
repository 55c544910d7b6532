package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/miraclehq/miracle/cmd"
)

func main() {
	// .env carries GEMINI_API_KEY during development; absence is fine.
	_ = godotenv.Load()

	// Shell completion. When invoked by the shell's completion hook this
	// prints candidates and exits.
	completion().Complete("miracle")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	trade := map[string]complete.Predictor{
		"s": predict.Nothing,
		"q": predict.Nothing,
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"buy":        {Flags: trade},
			"sell":       {Flags: trade},
			"deposit":    {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
			"withdraw":   {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
			"pie-create": {Flags: map[string]complete.Predictor{"n": predict.Nothing}},
			"pie-delete": {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
			"pies":       {},
			"summary":    {},
			"holdings":   {},
			"history":    {},
			"insight":    {Flags: map[string]complete.Predictor{"s": predict.Nothing}},
			"serve": {Flags: map[string]complete.Predictor{
				"port":      predict.Nothing,
				"log-level": predict.Set{"debug", "info", "warn", "error"},
				"log-file":  predict.Files("*"),
				"pretty":    predict.Nothing,
			}},
		},
	}
}
