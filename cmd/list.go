package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets stored in the catalog database",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	datasets, err := store.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}
	if len(datasets) == 0 {
		fmt.Println("The catalog is empty. Run `datacat generate` first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATASET\tVARIANT\tVERSION\tEXAMPLES\tSIZE")
	for i := range datasets {
		d := &datasets[i]
		for j := range d.Variants {
			v := &d.Variants[j]
			examples := int64(0)
			for _, split := range v.Splits {
				examples += split.NumExamples
			}
			size := "unknown"
			if v.DatasetSize > 0 {
				size = humanize.IBytes(uint64(v.DatasetSize))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				d.Name, v.Name, v.Version, humanize.Comma(examples), size)
		}
	}
	return w.Flush()
}
