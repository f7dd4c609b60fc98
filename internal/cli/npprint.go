package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/udesa-vision/i308-utils/internal/app"
)

// npprintCmd represents the npprint command
var npprintCmd = &cobra.Command{
	Use:   "npprint [file.csv]",
	Short: "Print CSV data as a NumPy array literal",
	Long: `Read comma-separated numbers and print them as an np.array literal.

Values are printed with 6 decimals for single-row or single-column arrays
and 3 decimals otherwise. Standard input is read when no file is given.

Examples:
  i308 npprint points.csv
  echo "1,2,3" | i308 npprint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNpprint,
}

func runNpprint(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	out, err := app.FormatArray(r)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
