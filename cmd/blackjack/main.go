package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// version is set by ldflags during build
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `default:"blackjack.hcl" help:"HCL config file (missing file uses defaults)"`
	Decks    int              `help:"Decks in the shoe"`
	Balance  int              `help:"Starting balance"`
	Seed     int64            `help:"Shuffle seed (0 for random)"`
	UI       string           `name:"ui" enum:",text,tui" default:"" help:"Front end: text or tui"`
	Cards    string           `enum:",ascii,text" default:"" help:"Card style: ascii or text"`
	NoColor  bool             `help:"Disable colour output"`
	LogLevel string           `enum:",debug,info,warn,error" default:"" help:"Log level: debug, info, warn or error"`
	LogFile  string           `help:"File to write the log to"`
	History  string           `help:"Write the round history to this YAML file on exit"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Play blackjack against the dealer in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	err := cli.Run()
	ctx.FatalIfErrorf(err)
}
