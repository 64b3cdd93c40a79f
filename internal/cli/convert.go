package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Simplici0/toolcost/internal/consumption"
)

func newConvertCmd() *cobra.Command {
	var (
		distance float64
		holes    int64
		depth    float64
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between machined distance and hole count",
		Example: `  toolcost convert --distance 30
  toolcost convert --holes 1000 --depth 0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			distanceSet := cmd.Flags().Changed("distance")
			holesSet := cmd.Flags().Changed("holes")
			if distanceSet == holesSet {
				return errors.New("pass exactly one of --distance or --holes")
			}

			basis := consumption.Basis{Mode: consumption.ModeDistance, Distance: distance, DepthPerHole: depth}
			if holesSet {
				basis = consumption.Basis{Mode: consumption.ModeHoles, Holes: holes, DepthPerHole: depth}
			}
			r := basis.Resolve()

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s m = %s holes (depth %s m/hole)\n",
				humanize.CommafWithDigits(r.Distance, 4),
				humanize.Comma(r.Holes),
				humanize.CommafWithDigits(r.DepthPerHole, 4))
			return err
		},
	}

	cmd.Flags().Float64Var(&distance, "distance", 0, "machined distance in meters")
	cmd.Flags().Int64Var(&holes, "holes", 0, "number of holes")
	cmd.Flags().Float64Var(&depth, "depth", consumption.DefaultDepthPerHole, "depth of cut per hole in meters")

	return cmd
}
