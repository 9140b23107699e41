package commands

import (
	"fmt"
	"os"

	"github.com/mosaicnetworks/hgcore/src/journal"
	"github.com/spf13/cobra"
)

// NewReplayCmd returns the command that rebuilds a graph from a journal
func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "replay",
		Short:   "Rebuild the consensus state from a journal and verify it",
		PreRunE: loadConfig,
		RunE:    runReplay,
	}
	addCommonFlags(cmd)
	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := _config.Core.Logger()

	if _, err := os.Stat(_config.Core.DatabaseDir); err != nil {
		return fmt.Errorf("no journal in %s: %w", _config.Core.DatabaseDir, err)
	}

	j, err := journal.NewBadgerJournal(_config.Core.DatabaseDir, logger)
	if err != nil {
		logger.WithError(err).Error("Cannot open journal")
		return err
	}
	defer j.Close()

	graph, err := journal.Replay(j, _config.Core.CacheSize, logger)
	if err != nil {
		logger.WithError(err).Error("Replay failed")
		return err
	}

	if err := graph.VerifyAncestry(); err != nil {
		logger.WithError(err).Error("Ancestry verification failed")
		return err
	}

	return printSummary(graph, logger)
}
