package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/gutenclean/pkg/gutenclean"
	"github.com/cognicore/gutenclean/pkg/gutenclean/config"
	"github.com/cognicore/gutenclean/pkg/gutenclean/logger"
)

var (
	configPath string
	logLevel   string
	logJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "gutenclean <input> <output>",
	Short: "Strip distributor boilerplate from a book and write cleaned lemma tokens",
	Long: `gutenclean reads one plain-text book, removes the distributor header and
footer, and writes the remaining prose as a single line of lowercase,
stopword-free lemma tokens.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClean,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (markers, stoplist, lexicon, encodings)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
}

func runClean(cmd *cobra.Command, args []string) error {
	log := logger.New(&logger.Config{
		Level:      logger.ParseLevel(logLevel),
		Output:     cmd.ErrOrStderr(),
		JSON:       logJSON,
		TimeFormat: "15:04:05",
	})

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	comp, err := cfg.Load(cmd.Context())
	if err != nil {
		return err
	}

	cleaner, err := gutenclean.New(gutenclean.Options{
		Markers:        comp.Markers,
		Profile:        comp.Profile,
		Logger:         log,
		InputEncoding:  comp.InputEncoding,
		OutputEncoding: comp.OutputEncoding,
	})
	if err != nil {
		return err
	}

	_, err = cleaner.Run(cmd.Context(), args[0], args[1])
	return err
}
