// Command xtrees is the CLI driver for the xtrees library: fit/predict/
// report subcommands over CSV input, grounded on
// pbanos-botanic/cmd/botanic's subcommand layout (grow/predict/test ->
// fit/predict/report here) using spf13/cobra, superseding the teacher's
// (wlattner/rf) flat docker/pkg/mflag flag set once the CLI needs more than
// one mode (see DESIGN.md). davecheney/profile is kept from the teacher's
// main.go for optional CPU profiling around the fit command.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stderr)

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "xtrees",
		Short: "xtrees fits and queries randomized decision-tree ensembles",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.InfoLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(fitCmd(), predictCmd(), reportCmd())
	return root
}
