package command

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jose-valero/kart-queue-bot/internal/track"
	"github.com/jose-valero/kart-queue-bot/pkg/config"
)

type Tracks struct {
	Out io.Writer
}

func (cmd Tracks) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "print the configured track catalog",
		RunE: func(_ *cobra.Command, _ []string) error {
			r, err := config.LoadRace()
			if err != nil {
				return errors.Wrap(err, "tracks: config")
			}
			cat, err := track.Parse(r.Tracks, r.TargetPlayers, r.MinPlayers)
			if err != nil {
				return errors.Wrap(err, "tracks")
			}
			return cmd.print(cat)
		},
	}
}

func (cmd Tracks) print(cat *track.Catalog) error {
	w := tabwriter.NewWriter(cmd.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRACK\tLIMIT\tMIN")
	for _, t := range cat.Tracks() {
		fmt.Fprintf(w, "%s\t%d\t%d\n", t.Name, t.Limit, t.MinPlayers)
	}
	return w.Flush()
}
