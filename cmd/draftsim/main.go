package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Open       OpenCmd          `cmd:"" help:"Open booster packs and print them"`
	Sealed     SealedCmd        `cmd:"" help:"Open a sealed pool and save it for deck building"`
	Draft      DraftCmd         `cmd:"" help:"Draft against seven bots"`
	Simulate   SimulateCmd      `cmd:"" help:"Run bot-only drafts and report archetype convergence"`
	Deck       DeckCmd          `cmd:"" help:"Build a deck from the saved pool"`
	Playtest   PlaytestCmd      `cmd:"" help:"Goldfish the saved deck"`
	Archetypes ArchetypesCmd    `cmd:"" help:"Analyse the catalog by colour pair"`
	Notes      NotesCmd         `cmd:"" help:"Manage personal card notes"`
	History    HistoryCmd       `cmd:"" help:"Show a saved draft log"`
	Serve      ServeCmd         `cmd:"" help:"Serve drafts over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("draftsim"),
		kong.Description("Booster draft simulator with bot opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	ctx.FatalIfErrorf(cli.Globals.setup())
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
