package cmd

import (
	"flag"
	"log/slog"

	"github.com/etnz/cryptotax/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// filePredictors predict the value of file flags.
var filePredictors = map[string]complete.Predictor{
	"config": predict.Files("*.yaml"),
	"trades": predict.Files("*.csv"),
	"out":    predict.Dirs("*"),
	"format": predict.Set{formatSRU, formatMarkdown},
}

// Complete runs the shell completion of the k4tax commands when the shell
// requests it, and exits. It returns otherwise.
//
// Run "COMP_INSTALL=1 k4tax" to install the completion in the shell.
func Complete(name string) { completionCommand().Complete(name) }

// completionCommand returns the completion tree of the k4tax commands.
func completionCommand() *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictors(flag.CommandLine),
	}
	topics, err := docs.GetAllTopics()
	if err != nil {
		slog.Debug("cannot list topics", "error", err)
	}
	for _, sub := range Commands {
		f := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(f)
		s := &complete.Command{Flags: predictors(f)}
		if sub.Name() == "topic" {
			s.Args = predict.Set(topics)
		}
		c.Sub[sub.Name()] = s
	}
	return c
}

// predictors returns the predictors of the flags in f.
func predictors(f *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = nil
			return
		}
		if p, ok := filePredictors[fl.Name]; ok {
			m[fl.Name] = p
			return
		}
		m[fl.Name] = predict.Something
	})
	return m
}
