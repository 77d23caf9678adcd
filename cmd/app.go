// Package cmd implements the k4tax command line application.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the k4tax subcommands.
var Commands = []subcommands.Command{
	&reportCmd{},
	&auditCmd{},
	&holdingsCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&reportCmd{}, "tax")
	c.Register(&auditCmd{}, "tax")
	c.Register(&holdingsCmd{}, "tax")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "k4tax.yaml", "Path to the configuration file (YAML)")
var Verbose = flag.Bool("v", false, "Print debug logs")
var raw = flag.Bool("raw", false, "Print markdown without terminal rendering")

// SetupLogging configures the default logger on stderr.
func SetupLogging() {
	level := slog.LevelInfo
	if *Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// printMarkdown prints md on stdout, rendered for the terminal unless -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		slog.Debug("cannot render markdown", "error", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// EnvTestingNow overrides the current time, for stable outputs in tests.
const EnvTestingNow = "K4TAX_TESTING_NOW"

// now returns the current time.
func now() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		t, err := time.Parse("2006-01-02 15:04:05", v)
		if err == nil {
			return t
		}
		slog.Warn("invalid testing time", "env", EnvTestingNow, "value", v, "error", err)
	}
	return time.Now()
}
