package commands

import (
	"os"

	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/mosaicnetworks/hgcore/src/journal"
	"github.com/mosaicnetworks/hgcore/src/simulation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRunCmd returns the command that simulates a network of validators and
// prints the resulting consensus state
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Simulate validators and compute rounds, witnesses and fame",
		PreRunE: loadConfig,
		RunE:    runSimulation,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runSimulation(cmd *cobra.Command, args []string) error {
	logger := _config.Core.Logger()

	// validators.json, if present, fixes the weights. Simulated creators
	// missing from it are registered with the default weight at genesis.
	registry, err := _config.Core.Registry()
	if err != nil {
		logger.WithError(err).Error("Cannot read validators")
		return err
	}
	if registry.Len() == 0 {
		registry = _config.Simulation.Registry()
	}

	graph := hashgraph.NewConsensusGraph(registry, _config.Core.CacheSize, logger)

	var inserter simulation.Inserter = graph
	var recorder *journal.Recorder

	if _config.Core.Store {
		j, err := journal.NewBadgerJournal(_config.Core.DatabaseDir, logger)
		if err != nil {
			logger.WithError(err).Error("Cannot open journal")
			return err
		}
		defer j.Close()

		recorder, err = journal.NewRecorder(graph, j, logger)
		if err != nil {
			logger.WithError(err).Error("Cannot record into journal")
			return err
		}
		inserter = recorder
	}

	steps, err := simulation.Generate(_config.Simulation)
	if err != nil {
		return err
	}

	if _, err := simulation.Run(inserter, steps); err != nil {
		logger.WithError(err).Error("Simulation aborted")
		return err
	}

	if recorder != nil {
		if err := recorder.Flush(); err != nil {
			logger.WithError(err).Error("Cannot flush journal")
			return err
		}
	}

	return printSummary(graph, logger)
}

func printSummary(graph *hashgraph.ConsensusGraph, logger *logrus.Entry) error {
	summaries, err := simulation.Summarize(graph)
	if err != nil {
		return err
	}

	if late := graph.Registry().Late(); len(late) > 0 {
		logger.WithField("late", late).Warn("Validators admitted after consensus began")
	}

	logger.WithFields(logrus.Fields{
		"events":     graph.Len(),
		"validators": graph.Registry().Len(),
		"last_round": graph.LastRound(),
	}).Info("Consensus state")

	simulation.Print(os.Stdout, summaries)

	return nil
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

// AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	addCommonFlags(cmd)

	// Store
	cmd.Flags().Bool("store", _config.Core.Store, "Journal accepted events to badgerDB")

	// Simulation
	cmd.Flags().IntP("validators", "n", _config.Simulation.Validators, "Number of simulated validators")
	cmd.Flags().IntP("events", "e", _config.Simulation.Events, "Number of events to generate")
	cmd.Flags().Float64("other-parent-rate", _config.Simulation.OtherParentRate, "Probability that an event has an other-parent")
	cmd.Flags().Int64("seed", _config.Simulation.Seed, "Seed of the event generator")
}
