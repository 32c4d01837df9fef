package lastfm

// Typed records returned by Client operations. Optional values are pointers
// or nil slices; nil always means the API did not supply the value.

// ImageSize is the size class of an image.
type ImageSize string

// Image sizes sent by the API.
const (
	ImageSmall      ImageSize = "small"
	ImageMedium     ImageSize = "medium"
	ImageLarge      ImageSize = "large"
	ImageExtraLarge ImageSize = "extralarge"
	ImageMega       ImageSize = "mega"
)

// Valid reports whether s is one of the known sizes.
func (s ImageSize) Valid() bool {
	switch s {
	case ImageSmall, ImageMedium, ImageLarge, ImageExtraLarge, ImageMega:
		return true
	}
	return false
}

// Image is an artwork link.
type Image struct {
	URL  string
	Size *ImageSize
}

// Tag is a user-applied tag.
type Tag struct {
	Name string
	URL  string
}

// Artist is an artist.search match.
type Artist struct {
	Name       string
	Listeners  int64
	MBID       *string
	URL        string
	Streamable bool
	Images     []Image
}

// ArtistDetail is the artist.getinfo record.
type ArtistDetail struct {
	Name       string
	MBID       *string
	URL        string
	Images     []Image
	Streamable bool
	OnTour     bool
	Stats      ArtistStats
	Similar    []SimilarArtist
	Tags       []Tag      // nil when the artist has no tags section
	Bio        *ArtistBio // nil when no biography is available
}

// ArtistStats holds listener and play counts. UserPlaycount is only set
// when the request named a user.
type ArtistStats struct {
	Listeners     int64
	Playcount     int64
	UserPlaycount *int64
}

// SimilarArtist is an entry of ArtistDetail.Similar.
type SimilarArtist struct {
	Name   string
	URL    string
	Images []Image
}

// ArtistBio is the wiki biography of an artist.
type ArtistBio struct {
	Links     []BioLink
	Published string
	Summary   string
	Content   *string
}

// BioLink is a link attached to a biography.
type BioLink struct {
	Text string
	Rel  string
	Href string
}

// Album is an album.search match.
type Album struct {
	Name       string
	Artist     string
	URL        string
	Images     []Image
	Streamable bool
	MBID       *string
}

// AlbumDetail is the album.getinfo record.
type AlbumDetail struct {
	Name          string
	Artist        string
	MBID          *string
	URL           string
	Listeners     int64
	Playcount     int64
	UserPlaycount *int64
	Tags          []Tag
	Images        []Image
	Tracks        []Track // in album order
	Wiki          *Wiki
}

// Track is an album track.
type Track struct {
	Name       string
	URL        string
	Duration   *int64 // seconds
	Rank       int64
	Streamable TrackStreamable
	Artist     TrackArtist
}

// TrackStreamable describes streaming availability of a track.
type TrackStreamable struct {
	FullTrack bool
	Text      string
}

// TrackArtist is the performer credited on a track.
type TrackArtist struct {
	Name string
	URL  string
	MBID *string
}

// Wiki is the wiki text of an album.
type Wiki struct {
	Published string
	Summary   *string
	Content   *string
}

// AlbumTags is the album.gettags record.
type AlbumTags struct {
	Artist string
	Album  string
	Tags   []Tag
}
