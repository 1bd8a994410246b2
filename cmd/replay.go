package cmd

import (
	"fmt"
	"github.com/gagarinchain/offences/run"
	"github.com/spf13/cobra"
	"os"
)

var dump bool

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay [scenario.yaml]",
	Short: "Replay offence reports",
	Long:  "Feeds reports from scenario file through the registry and prints every slashing batch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, err := run.GetScenarioFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		reports, err := scenario.ToReports()
		if err != nil {
			log.Fatal(err)
		}

		ctx := createContext(run.NewBatchPrinter(os.Stdout, dump))
		defer ctx.Close()

		res, err := run.Replay(ctx, reports)
		if err != nil {
			log.Error(err)
		}
		fmt.Printf("reports=%d incidents=%d duplicates=%d\n", res.Reports, res.Incidents, res.Duplicates)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&dump, "dump", false, "Dump whole batches instead of one line per offender")
}
