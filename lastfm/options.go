package lastfm

// Option adjusts a single call. Options that do not apply to an operation
// are ignored by it.
type Option func(*callOptions)

type callOptions struct {
	limit       int
	page        int
	mbid        string
	lang        string
	username    string
	autocorrect bool
	useCache    bool
}

func newCallOptions(opts []Option) callOptions {
	o := callOptions{
		limit:       30,
		page:        1,
		autocorrect: true,
		useCache:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLimit sets the number of search results per page. Default 30.
func WithLimit(n int) Option { return func(o *callOptions) { o.limit = n } }

// WithPage sets the search result page. Default 1.
func WithPage(n int) Option { return func(o *callOptions) { o.page = n } }

// WithMBID looks the entity up by MusicBrainz ID.
func WithMBID(mbid string) Option { return func(o *callOptions) { o.mbid = mbid } }

// WithLang sets the ISO 639 alpha-2 language of biography and wiki text.
func WithLang(lang string) Option { return func(o *callOptions) { o.lang = lang } }

// WithUsername adds the play count of the named user to the response.
func WithUsername(user string) Option { return func(o *callOptions) { o.username = user } }

// WithAutocorrect toggles server-side correction of misspelled names.
// Enabled by default.
func WithAutocorrect(on bool) Option { return func(o *callOptions) { o.autocorrect = on } }

// WithoutCache forces a network fetch and leaves any cached entry as it is.
func WithoutCache() Option { return func(o *callOptions) { o.useCache = false } }

// optional maps "" to nil so the param is dropped.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
