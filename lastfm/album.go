package lastfm

import "context"

// SearchAlbum returns the albums matching name.
func (c *Client) SearchAlbum(ctx context.Context, name string, opts ...Option) ([]Album, error) {
	o := newCallOptions(opts)
	raw, err := c.Request(ctx, Params{
		"method": "album.search",
		"album":  name,
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
	matches, err := results.object("albummatches")
	if err != nil {
		return nil, err
	}
	return each(matches, "album", normalizeAlbum)
}

// GetAlbumDetail fetches full information about an album, including its
// track list. artist and album may be empty when WithMBID is given.
func (c *Client) GetAlbumDetail(ctx context.Context, artist, album string, opts ...Option) (AlbumDetail, error) {
	o := newCallOptions(opts)
	raw, err := c.Request(ctx, Params{
		"method":      "album.getinfo",
		"artist":      artist,
		"album":       album,
		"mbid":        optional(o.mbid),
		"lang":        optional(o.lang),
		"username":    optional(o.username),
		"autocorrect": o.autocorrect,
	}, o.useCache)
	if err != nil {
		return AlbumDetail{}, err
	}

	n, err := rootNode(raw).object("album")
	if err != nil {
		return AlbumDetail{}, err
	}
	return normalizeAlbumDetail(n)
}

// GetAlbumTags fetches the tags applied to an album. With WithUsername only
// that user's tags are returned.
func (c *Client) GetAlbumTags(ctx context.Context, artist, album string, opts ...Option) (AlbumTags, error) {
	o := newCallOptions(opts)
	raw, err := c.Request(ctx, Params{
		"method":      "album.gettags",
		"artist":      artist,
		"album":       album,
		"mbid":        optional(o.mbid),
		"user":        optional(o.username),
		"autocorrect": o.autocorrect,
	}, o.useCache)
	if err != nil {
		return AlbumTags{}, err
	}

	n, err := rootNode(raw).object("tags")
	if err != nil {
		return AlbumTags{}, err
	}
	return normalizeAlbumTags(n)
}
