package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sydlexius/lastfm-client/lastfm"
)

// albumArgs resolves "<artist> <album>" or a single "<mbid>".
func albumArgs(args []string) (artist, album string, opts []lastfm.Option, err error) {
	switch len(args) {
	case 1:
		if !isMBID(args[0]) {
			return "", "", nil, fmt.Errorf("expected <artist> <album> or an album MBID, got %q", args[0])
		}
		return "", "", []lastfm.Option{lastfm.WithMBID(args[0])}, nil
	case 2:
		return args[0], args[1], nil, nil
	default:
		return "", "", nil, fmt.Errorf("expected <artist> <album> or an album MBID")
	}
}

func newAlbumCommand(ctx *commandContext) *cobra.Command {
	var flags detailFlags
	cmd := &cobra.Command{
		Use:   "album <artist> <album> | album <mbid>",
		Short: "Show album details and track list",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist, album, opts, err := albumArgs(args)
			if err != nil {
				return err
			}
			opts = append(opts, flags.options()...)
			return ctx.withClient(cmd.Context(), func(rctx context.Context, c *lastfm.Client) error {
				d, err := c.GetAlbumDetail(rctx, artist, album, ctx.callOptions(opts...)...)
				if err != nil {
					return err
				}
				return ctx.render(cmd, d, func() string { return albumDetailTable(d) })
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newAlbumSearchCommand(ctx *commandContext) *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:   "album-search <name>",
		Short: "Search albums by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd.Context(), func(rctx context.Context, c *lastfm.Client) error {
				results, err := c.SearchAlbum(rctx, args[0], ctx.callOptions(flags.options()...)...)
				if err != nil {
					return err
				}
				return ctx.render(cmd, results, func() string { return albumSearchTable(results) })
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newAlbumTagsCommand(ctx *commandContext) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "album-tags <artist> <album> | album-tags <mbid>",
		Short: "List the tags applied to an album",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist, album, opts, err := albumArgs(args)
			if err != nil {
				return err
			}
			opts = append(opts, lastfm.WithUsername(user))
			return ctx.withClient(cmd.Context(), func(rctx context.Context, c *lastfm.Client) error {
				tags, err := c.GetAlbumTags(rctx, artist, album, ctx.callOptions(opts...)...)
				if err != nil {
					return err
				}
				return ctx.render(cmd, tags, func() string { return albumTagsTable(tags) })
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Only show tags applied by this Last.fm user")
	return cmd
}

func albumDetailTable(d lastfm.AlbumDetail) string {
	fields := [][2]string{
		{"Name", d.Name},
		{"Artist", d.Artist},
		{"MBID", deref(d.MBID)},
		{"URL", d.URL},
		{"Listeners", formatCount(d.Listeners)},
		{"Playcount", formatCount(d.Playcount)},
		{"User playcount", formatOptCount(d.UserPlaycount)},
		{"Tags", tagNames(d.Tags)},
	}
	if d.Wiki != nil && d.Wiki.Summary != nil {
		fields = append(fields, [2]string{"Summary", *d.Wiki.Summary})
	}
	out := renderFields(fields)
	if len(d.Tracks) == 0 {
		return out
	}

	rows := make([][]string, 0, len(d.Tracks))
	for _, t := range d.Tracks {
		rows = append(rows, []string{strconv.FormatInt(t.Rank, 10), t.Name, formatDuration(t.Duration)})
	}
	return out + "\n" + renderTable(
		[]string{"#", "Track", "Length"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	)
}

func albumSearchTable(results []lastfm.Album) string {
	rows := make([][]string, 0, len(results))
	for _, a := range results {
		rows = append(rows, []string{a.Name, a.Artist, deref(a.MBID), a.URL})
	}
	return renderTable([]string{"Album", "Artist", "MBID", "URL"}, rows, nil)
}

func albumTagsTable(t lastfm.AlbumTags) string {
	rows := make([][]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		rows = append(rows, []string{tag.Name, tag.URL})
	}
	return renderTable([]string{"Tag", "URL"}, rows, nil)
}

func formatDuration(seconds *int64) string {
	if seconds == nil {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", *seconds/60, *seconds%60)
}
