package cli

import (
	"github.com/spf13/cobra"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the corpus index and upload it to object storage",
	Long: `Runs the full ingestion offline: list, normalise, chunk, embed, index,
then uploads the cache pair so services start warm. Without --rebuild an
existing cached index is loaded and left untouched.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "rebuild even if a cached index exists")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	logger.SetName("index")

	manager, err := buildIndexManager(cmd.Context())
	if err != nil {
		return err
	}

	if indexRebuild {
		err = manager.Rebuild(cmd.Context())
	} else {
		err = manager.Ensure(cmd.Context())
	}
	if err != nil {
		return err
	}

	cmd.Printf("index ready: %d chunks\n", manager.Len())
	return nil
}
