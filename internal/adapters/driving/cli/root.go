// Package cli wires the cobra command tree: one binary that can serve any
// of the five services, build the index offline, or ask questions from a
// terminal.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/config"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

var version = "dev"

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "safetycamp",
	Short: "Retrieval-augmented, safety-gated Q&A services",
	Long: `safetycamp runs the services of a RAG question answering system with a
moderation gate: orchestrator, moderator, retrieval, generation gateway
and log sink, plus offline index management and a terminal client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// A missing .env is normal outside local development.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		if verbose {
			logger.SetMinLevel(logger.LevelDebug)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "safetycamp.toml", "path to the TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the command tree. v is the build version stamped by the
// linker.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
