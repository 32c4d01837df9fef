package lastfm

import "context"

// SearchArtist returns the artists matching name.
func (c *Client) SearchArtist(ctx context.Context, name string, opts ...Option) ([]Artist, error) {
	o := newCallOptions(opts)
	raw, err := c.Request(ctx, Params{
		"method": "artist.search",
		"artist": name,
		"limit":  o.limit,
		"page":   o.page,
	}, o.useCache)
	if err != nil {
		return nil, err
	}

	results, err := rootNode(raw).object("results")
	if err != nil {
		return nil, err
	}
	matches, err := results.object("artistmatches")
	if err != nil {
		return nil, err
	}
	return each(matches, "artist", normalizeArtist)
}

// GetArtistDetail fetches full information about an artist. name may be
// empty when WithMBID is given.
func (c *Client) GetArtistDetail(ctx context.Context, name string, opts ...Option) (ArtistDetail, error) {
	o := newCallOptions(opts)
	raw, err := c.Request(ctx, Params{
		"method":      "artist.getinfo",
		"artist":      name,
		"mbid":        optional(o.mbid),
		"lang":        optional(o.lang),
		"username":    optional(o.username),
		"autocorrect": o.autocorrect,
	}, o.useCache)
	if err != nil {
		return ArtistDetail{}, err
	}

	artist, err := rootNode(raw).object("artist")
	if err != nil {
		return ArtistDetail{}, err
	}
	return normalizeArtistDetail(artist)
}
