package commands

import (
	"github.com/spf13/cobra"
)

var (
	_config = NewDefaultCLIConfig()
)

// RootCmd is the root command for hgcore
var RootCmd = &cobra.Command{
	Use:              "hgcore",
	Short:            "virtual-voting consensus core",
	TraverseChildren: true,
}
