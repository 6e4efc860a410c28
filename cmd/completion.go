package cmd

import (
	"flag"
	"io"

	"github.com/etnz/robostat/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors overrides the default predictor of some flags.
var flagPredictors = map[string]complete.Predictor{
	"dir":    predict.Dirs("*"),
	"ids":    predict.Files("*.json"),
	"xlsx":   predict.Files("*.xlsx"),
	"format": predict.Set{"text", "markdown"},
}

// Completion describes the command line of the application for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictors(flag.CommandLine),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: predictors(fs)}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	return root
}

func predictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Nothing
	})
	return flags
}
