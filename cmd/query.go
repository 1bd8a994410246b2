package cmd

import (
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/offences/offence"
	"github.com/spf13/cobra"
)

var (
	kindName     string
	offenderAddr string
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print how many incidents of a kind an offender was punished for",
	Run: func(cmd *cobra.Command, args []string) {
		kind := parseKind()
		if !common.IsHexAddress(offenderAddr) {
			log.Fatalf("[%v] is not an address", offenderAddr)
		}

		ctx := createContext(nil)
		defer ctx.Close()

		c, err := ctx.Registry().Count(kind, common.HexToAddress(offenderAddr))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(c)
	},
}

var incidentsCmd = &cobra.Command{
	Use:   "incidents",
	Short: "List processed incidents of a kind",
	Run: func(cmd *cobra.Command, args []string) {
		kind := parseKind()

		ctx := createContext(nil)
		defer ctx.Close()

		incidents, err := ctx.Registry().Incidents(kind)
		if err != nil {
			log.Fatal(err)
		}
		for _, inc := range incidents {
			for i, d := range inc.Offenders {
				fmt.Printf("%v %v %v reporters=%d\n", inc.Key, d.Offender.Hex(), inc.Fractions[i], len(d.Reporters))
			}
		}
	},
}

func parseKind() offence.Kind {
	kind, err := offence.ParseKind(kindName)
	if err != nil {
		log.Fatal(err)
	}
	return kind
}

func init() {
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(incidentsCmd)

	countCmd.Flags().StringVarP(&kindName, "kind", "k", "", "Offence kind")
	countCmd.Flags().StringVarP(&offenderAddr, "offender", "o", "", "Offender address")
	incidentsCmd.Flags().StringVarP(&kindName, "kind", "k", "", "Offence kind")
}
