package lastfm

// Normalize functions turn one response object into a typed record. They
// only use the node readers, so every field of a given kind follows the same
// coercion rule.

func normalizeImage(n node) (Image, error) {
	url, err := n.str("#text")
	if err != nil {
		return Image{}, err
	}
	size, err := n.imageSize("size")
	if err != nil {
		return Image{}, err
	}
	return Image{URL: url, Size: size}, nil
}

func normalizeTag(n node) (Tag, error) {
	name, err := n.str("name")
	if err != nil {
		return Tag{}, err
	}
	url, err := n.str("url")
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: name, URL: url}, nil
}

// optionalTags reads a {"tag": [...]} section that may be missing or "".
func optionalTags(n node, name string) ([]Tag, error) {
	section, ok, err := n.optObject(name)
	if err != nil || !ok {
		return nil, err
	}
	return each(section, "tag", normalizeTag)
}

func normalizeArtist(n node) (Artist, error) {
	var (
		a   Artist
		err error
	)
	if a.Name, err = n.str("name"); err != nil {
		return Artist{}, err
	}
	if a.Listeners, err = n.integer("listeners"); err != nil {
		return Artist{}, err
	}
	if a.MBID, err = n.mbid("mbid"); err != nil {
		return Artist{}, err
	}
	if a.URL, err = n.str("url"); err != nil {
		return Artist{}, err
	}
	if a.Streamable, err = n.boolean("streamable"); err != nil {
		return Artist{}, err
	}
	if a.Images, err = each(n, "image", normalizeImage); err != nil {
		return Artist{}, err
	}
	return a, nil
}

func normalizeSimilarArtist(n node) (SimilarArtist, error) {
	var (
		s   SimilarArtist
		err error
	)
	if s.Name, err = n.str("name"); err != nil {
		return SimilarArtist{}, err
	}
	if s.URL, err = n.str("url"); err != nil {
		return SimilarArtist{}, err
	}
	if s.Images, err = each(n, "image", normalizeImage); err != nil {
		return SimilarArtist{}, err
	}
	return s, nil
}

func normalizeArtistStats(n node) (ArtistStats, error) {
	var (
		s   ArtistStats
		err error
	)
	if s.Listeners, err = n.integer("listeners"); err != nil {
		return ArtistStats{}, err
	}
	if s.Playcount, err = n.integer("playcount"); err != nil {
		return ArtistStats{}, err
	}
	if s.UserPlaycount, err = n.optInteger("userplaycount"); err != nil {
		return ArtistStats{}, err
	}
	return s, nil
}

func normalizeBioLink(n node) (BioLink, error) {
	var (
		l   BioLink
		err error
	)
	if l.Text, err = n.str("#text"); err != nil {
		return BioLink{}, err
	}
	if l.Rel, err = n.str("rel"); err != nil {
		return BioLink{}, err
	}
	if l.Href, err = n.str("href"); err != nil {
		return BioLink{}, err
	}
	return l, nil
}

func normalizeArtistBio(n node) (ArtistBio, error) {
	var (
		b   ArtistBio
		err error
	)
	if links, ok, err := n.optObject("links"); err != nil {
		return ArtistBio{}, err
	} else if ok {
		if b.Links, err = each(links, "link", normalizeBioLink); err != nil {
			return ArtistBio{}, err
		}
	}
	if b.Published, err = n.str("published"); err != nil {
		return ArtistBio{}, err
	}
	if b.Summary, err = n.str("summary"); err != nil {
		return ArtistBio{}, err
	}
	if b.Content, err = n.optStr("content"); err != nil {
		return ArtistBio{}, err
	}
	return b, nil
}

func normalizeArtistDetail(n node) (ArtistDetail, error) {
	var (
		d   ArtistDetail
		err error
	)
	if d.Name, err = n.str("name"); err != nil {
		return ArtistDetail{}, err
	}
	if d.MBID, err = n.mbid("mbid"); err != nil {
		return ArtistDetail{}, err
	}
	if d.URL, err = n.str("url"); err != nil {
		return ArtistDetail{}, err
	}
	if d.Images, err = each(n, "image", normalizeImage); err != nil {
		return ArtistDetail{}, err
	}
	if d.Streamable, err = n.boolean("streamable"); err != nil {
		return ArtistDetail{}, err
	}
	if d.OnTour, err = n.boolean("ontour"); err != nil {
		return ArtistDetail{}, err
	}

	stats, err := n.object("stats")
	if err != nil {
		return ArtistDetail{}, err
	}
	if d.Stats, err = normalizeArtistStats(stats); err != nil {
		return ArtistDetail{}, err
	}

	similar, err := n.object("similar")
	if err != nil {
		return ArtistDetail{}, err
	}
	if d.Similar, err = each(similar, "artist", normalizeSimilarArtist); err != nil {
		return ArtistDetail{}, err
	}

	if d.Tags, err = optionalTags(n, "tags"); err != nil {
		return ArtistDetail{}, err
	}

	bio, ok, err := n.optObject("bio")
	if err != nil {
		return ArtistDetail{}, err
	}
	if ok {
		b, err := normalizeArtistBio(bio)
		if err != nil {
			return ArtistDetail{}, err
		}
		d.Bio = &b
	}
	return d, nil
}

func normalizeAlbum(n node) (Album, error) {
	var (
		a   Album
		err error
	)
	if a.Name, err = n.str("name"); err != nil {
		return Album{}, err
	}
	if a.Artist, err = n.str("artist"); err != nil {
		return Album{}, err
	}
	if a.URL, err = n.str("url"); err != nil {
		return Album{}, err
	}
	if a.Images, err = each(n, "image", normalizeImage); err != nil {
		return Album{}, err
	}
	if a.Streamable, err = n.boolean("streamable"); err != nil {
		return Album{}, err
	}
	if a.MBID, err = n.mbid("mbid"); err != nil {
		return Album{}, err
	}
	return a, nil
}

func normalizeTrack(n node) (Track, error) {
	var (
		t   Track
		err error
	)
	if t.Name, err = n.str("name"); err != nil {
		return Track{}, err
	}
	if t.URL, err = n.str("url"); err != nil {
		return Track{}, err
	}
	if t.Duration, err = n.optInteger("duration"); err != nil {
		return Track{}, err
	}

	attr, err := n.object("@attr")
	if err != nil {
		return Track{}, err
	}
	if t.Rank, err = attr.integer("rank"); err != nil {
		return Track{}, err
	}

	streamable, err := n.object("streamable")
	if err != nil {
		return Track{}, err
	}
	if t.Streamable.FullTrack, err = streamable.boolean("fulltrack"); err != nil {
		return Track{}, err
	}
	if t.Streamable.Text, err = streamable.str("#text"); err != nil {
		return Track{}, err
	}

	artist, err := n.object("artist")
	if err != nil {
		return Track{}, err
	}
	if t.Artist.Name, err = artist.str("name"); err != nil {
		return Track{}, err
	}
	if t.Artist.URL, err = artist.str("url"); err != nil {
		return Track{}, err
	}
	if t.Artist.MBID, err = artist.mbid("mbid"); err != nil {
		return Track{}, err
	}
	return t, nil
}

func normalizeWiki(n node) (Wiki, error) {
	var (
		w   Wiki
		err error
	)
	if w.Published, err = n.str("published"); err != nil {
		return Wiki{}, err
	}
	if w.Summary, err = n.optStr("summary"); err != nil {
		return Wiki{}, err
	}
	if w.Content, err = n.optStr("content"); err != nil {
		return Wiki{}, err
	}
	return w, nil
}

func normalizeAlbumDetail(n node) (AlbumDetail, error) {
	var (
		d   AlbumDetail
		err error
	)
	if d.Name, err = n.str("name"); err != nil {
		return AlbumDetail{}, err
	}
	if d.Artist, err = n.str("artist"); err != nil {
		return AlbumDetail{}, err
	}
	if d.MBID, err = n.mbid("mbid"); err != nil {
		return AlbumDetail{}, err
	}
	if d.URL, err = n.str("url"); err != nil {
		return AlbumDetail{}, err
	}
	if d.Listeners, err = n.integer("listeners"); err != nil {
		return AlbumDetail{}, err
	}
	if d.Playcount, err = n.integer("playcount"); err != nil {
		return AlbumDetail{}, err
	}
	if d.UserPlaycount, err = n.optInteger("userplaycount"); err != nil {
		return AlbumDetail{}, err
	}
	if d.Tags, err = optionalTags(n, "tags"); err != nil {
		return AlbumDetail{}, err
	}
	if d.Images, err = each(n, "image", normalizeImage); err != nil {
		return AlbumDetail{}, err
	}

	tracks, ok, err := n.optObject("tracks")
	if err != nil {
		return AlbumDetail{}, err
	}
	if ok {
		if d.Tracks, err = each(tracks, "track", normalizeTrack); err != nil {
			return AlbumDetail{}, err
		}
	}

	wiki, ok, err := n.optObject("wiki")
	if err != nil {
		return AlbumDetail{}, err
	}
	if ok {
		w, err := normalizeWiki(wiki)
		if err != nil {
			return AlbumDetail{}, err
		}
		d.Wiki = &w
	}
	return d, nil
}

func normalizeAlbumTags(n node) (AlbumTags, error) {
	var (
		t   AlbumTags
		err error
	)
	attr, err := n.object("@attr")
	if err != nil {
		return AlbumTags{}, err
	}
	if t.Artist, err = attr.str("artist"); err != nil {
		return AlbumTags{}, err
	}
	if t.Album, err = attr.str("album"); err != nil {
		return AlbumTags{}, err
	}
	// An untagged album has no "tag" member at all.
	if _, ok := n.present("tag"); ok {
		if t.Tags, err = each(n, "tag", normalizeTag); err != nil {
			return AlbumTags{}, err
		}
	}
	return t, nil
}

// parseAPIError validates an error payload. A malformed one is reported as a
// *SchemaError rather than an *APIError.
func parseAPIError(raw RawResponse) error {
	n := rootNode(raw)
	code, err := n.integer("error")
	if err != nil {
		return err
	}
	msg, err := n.str("message")
	if err != nil {
		return err
	}
	return &APIError{Code: int(code), Message: msg}
}
