package main

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sydlexius/lastfm-client/lastfm"
)

type detailFlags struct {
	user          string
	lang          string
	noAutocorrect bool
}

func (f *detailFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.user, "user", "", "Include the play count of this Last.fm user")
	cmd.Flags().StringVar(&f.lang, "lang", "", "ISO 639 alpha-2 language for biography text")
	cmd.Flags().BoolVar(&f.noAutocorrect, "no-autocorrect", false, "Disable server-side name correction")
}

func (f *detailFlags) options() []lastfm.Option {
	return []lastfm.Option{
		lastfm.WithUsername(f.user),
		lastfm.WithLang(f.lang),
		lastfm.WithAutocorrect(!f.noAutocorrect),
	}
}

type searchFlags struct {
	limit int
	page  int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 30, "Results per page")
	cmd.Flags().IntVar(&f.page, "page", 1, "Result page")
}

func (f *searchFlags) options() []lastfm.Option {
	return []lastfm.Option{lastfm.WithLimit(f.limit), lastfm.WithPage(f.page)}
}

// isMBID reports whether s is a MusicBrainz identifier rather than a name.
func isMBID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func newArtistCommand(ctx *commandContext) *cobra.Command {
	var flags detailFlags
	cmd := &cobra.Command{
		Use:   "artist <name|mbid>",
		Short: "Show artist details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			opts := flags.options()
			if isMBID(name) {
				opts = append(opts, lastfm.WithMBID(name))
				name = ""
			}
			return ctx.withClient(cmd.Context(), func(rctx context.Context, c *lastfm.Client) error {
				d, err := c.GetArtistDetail(rctx, name, ctx.callOptions(opts...)...)
				if err != nil {
					return err
				}
				return ctx.render(cmd, d, func() string { return artistDetailTable(d) })
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newArtistSearchCommand(ctx *commandContext) *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:   "artist-search <name>",
		Short: "Search artists by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd.Context(), func(rctx context.Context, c *lastfm.Client) error {
				results, err := c.SearchArtist(rctx, args[0], ctx.callOptions(flags.options()...)...)
				if err != nil {
					return err
				}
				return ctx.render(cmd, results, func() string { return artistSearchTable(results) })
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func artistDetailTable(d lastfm.ArtistDetail) string {
	similar := make([]string, 0, len(d.Similar))
	for _, s := range d.Similar {
		similar = append(similar, s.Name)
	}
	fields := [][2]string{
		{"Name", d.Name},
		{"MBID", deref(d.MBID)},
		{"URL", d.URL},
		{"Listeners", formatCount(d.Stats.Listeners)},
		{"Playcount", formatCount(d.Stats.Playcount)},
		{"User playcount", formatOptCount(d.Stats.UserPlaycount)},
		{"On tour", yesNo(d.OnTour)},
		{"Tags", tagNames(d.Tags)},
		{"Similar", strings.Join(similar, ", ")},
	}
	if d.Bio != nil {
		fields = append(fields, [2]string{"Summary", d.Bio.Summary})
	}
	return renderFields(fields)
}

func artistSearchTable(results []lastfm.Artist) string {
	rows := make([][]string, 0, len(results))
	for _, a := range results {
		rows = append(rows, []string{a.Name, formatCount(a.Listeners), deref(a.MBID), a.URL})
	}
	return renderTable(
		[]string{"Name", "Listeners", "MBID", "URL"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	)
}

func tagNames(tags []lastfm.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
