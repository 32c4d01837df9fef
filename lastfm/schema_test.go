package lastfm

import (
	"errors"
	"strings"
	"testing"
)

func mustDecode(t *testing.T, s string) node {
	t.Helper()
	raw, err := decode([]byte(s))
	if err != nil {
		t.Fatalf("decoding %s: %v", s, err)
	}
	return rootNode(raw)
}

func schemaErr(t *testing.T, err error) *SchemaError {
	t.Helper()
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	return se
}

func TestNodeInteger(t *testing.T) {
	tests := []struct {
		json    string
		want    int64
		wantErr bool
	}{
		{`{"v":"1234"}`, 1234, false},
		{`{"v":1234}`, 1234, false},
		{`{"v":"0"}`, 0, false},
		{`{"v":"-3"}`, -3, false},
		{`{"v":"12a"}`, 0, true},
		{`{"v":1.5}`, 0, true},
		{`{"v":""}`, 0, true},
		{`{"v":true}`, 0, true},
		{`{"v":null}`, 0, true},
		{`{}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			got, err := mustDecode(t, tt.json).integer("v")
			if tt.wantErr {
				if schemaErr(t, err).Path != "v" {
					t.Errorf("unexpected path in %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("integer: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNodeOptInteger(t *testing.T) {
	for _, s := range []string{`{}`, `{"v":null}`} {
		got, err := mustDecode(t, s).optInteger("v")
		if err != nil || got != nil {
			t.Errorf("%s: got %v, %v; want absent", s, got, err)
		}
	}
	got, err := mustDecode(t, `{"v":"7"}`).optInteger("v")
	if err != nil || got == nil || *got != 7 {
		t.Errorf("got %v, %v; want 7", got, err)
	}
	if _, err := mustDecode(t, `{"v":"x"}`).optInteger("v"); err == nil {
		t.Error("expected error for non-numeric optional integer")
	}
}

func TestNodeBoolean(t *testing.T) {
	tests := []struct {
		json    string
		want    bool
		wantErr bool
	}{
		{`{"v":"0"}`, false, false},
		{`{"v":"1"}`, true, false},
		{`{"v":0}`, false, false},
		{`{"v":1}`, true, false},
		{`{"v":"2"}`, true, false},
		{`{"v":true}`, true, false},
		{`{"v":false}`, false, false},
		{`{"v":"yes"}`, false, true},
		{`{"v":""}`, false, true},
		{`{}`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			got, err := mustDecode(t, tt.json).boolean("v")
			if tt.wantErr {
				schemaErr(t, err)
				return
			}
			if err != nil {
				t.Fatalf("boolean: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeMBID(t *testing.T) {
	for _, s := range []string{`{}`, `{"v":null}`, `{"v":""}`} {
		got, err := mustDecode(t, s).mbid("v")
		if err != nil || got != nil {
			t.Errorf("%s: got %v, %v; want absent", s, got, err)
		}
	}
	got, err := mustDecode(t, `{"v":"abc"}`).mbid("v")
	if err != nil || got == nil || *got != "abc" {
		t.Errorf("got %v, %v", got, err)
	}
	if _, err := mustDecode(t, `{"v":5}`).mbid("v"); err == nil {
		t.Error("expected error for numeric mbid")
	}
}

func TestNodeImageSize(t *testing.T) {
	for _, size := range []ImageSize{ImageSmall, ImageMedium, ImageLarge, ImageExtraLarge, ImageMega} {
		got, err := mustDecode(t, `{"size":"`+string(size)+`"}`).imageSize("size")
		if err != nil || got == nil || *got != size {
			t.Errorf("%s: got %v, %v", size, got, err)
		}
	}

	got, err := mustDecode(t, `{"size":""}`).imageSize("size")
	if err != nil || got != nil {
		t.Errorf("empty size: got %v, %v; want absent", got, err)
	}

	_, err = mustDecode(t, `{"size":"huge"}`).imageSize("size")
	se := schemaErr(t, err)
	if se.Reason != "unknown image size" || se.Value != "huge" {
		t.Errorf("unexpected error %+v", se)
	}
}

func TestNodeList(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    int
		wantErr string
	}{
		{"array", `{"v":[{"a":1},{"a":2}]}`, 2, ""},
		{"empty array", `{"v":[]}`, 0, ""},
		{"single object", `{"v":{"a":1}}`, 1, ""},
		{"missing", `{}`, 0, "v"},
		{"string", `{"v":"x"}`, 0, "v"},
		{"non-object element", `{"v":[{"a":1},"x"]}`, 0, "v[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mustDecode(t, tt.json).list("v")
			if tt.wantErr != "" {
				if p := schemaErr(t, err).Path; p != tt.wantErr {
					t.Errorf("Path = %q, want %q", p, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}

	items, err := mustDecode(t, `{"v":{"a":1}}`).list("v")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items[0].path != "v[0]" {
		t.Errorf("path = %q, want v[0]", items[0].path)
	}
}

func TestNodeOptObject(t *testing.T) {
	for _, s := range []string{`{}`, `{"v":null}`, `{"v":""}`} {
		_, ok, err := mustDecode(t, s).optObject("v")
		if err != nil || ok {
			t.Errorf("%s: ok=%v err=%v; want absent", s, ok, err)
		}
	}
	n, ok, err := mustDecode(t, `{"v":{"a":"b"}}`).optObject("v")
	if err != nil || !ok || n.path != "v" {
		t.Errorf("got %+v, %v, %v", n, ok, err)
	}
	if _, _, err := mustDecode(t, `{"v":"text"}`).optObject("v"); err == nil {
		t.Error("expected error for non-empty string section")
	}
}

func TestSchemaErrorPaths(t *testing.T) {
	tests := []struct {
		name string
		json string
		fn   func(node) error
		path string
	}{
		{
			name: "artist stats listeners",
			json: `{"artist":{"name":"x","url":"u","image":[],"streamable":"0","ontour":"0",
				"stats":{"listeners":"many","playcount":"1"},"similar":{"artist":[]}}}`,
			fn: func(n node) error {
				a, err := n.object("artist")
				if err != nil {
					return err
				}
				_, err = normalizeArtistDetail(a)
				return err
			},
			path: "artist.stats.listeners",
		},
		{
			name: "track rank",
			json: `{"album":{"name":"x","artist":"y","url":"u","listeners":"1","playcount":"1","image":[],
				"tracks":{"track":[
					{"name":"a","url":"u","duration":1,"@attr":{"rank":1},"streamable":{"fulltrack":"0","#text":"0"},"artist":{"name":"y","url":"u"}},
					{"name":"b","url":"u","duration":1,"@attr":{},"streamable":{"fulltrack":"0","#text":"0"},"artist":{"name":"y","url":"u"}}
				]}}}`,
			fn: func(n node) error {
				a, err := n.object("album")
				if err != nil {
					return err
				}
				_, err = normalizeAlbumDetail(a)
				return err
			},
			path: "album.tracks.track[1].@attr.rank",
		},
		{
			name: "search match name",
			json: `{"results":{"artistmatches":{"artist":{"listeners":"1","url":"u","streamable":"0","image":[]}}}}`,
			fn: func(n node) error {
				r, err := n.object("results")
				if err != nil {
					return err
				}
				m, err := r.object("artistmatches")
				if err != nil {
					return err
				}
				_, err = each(m, "artist", normalizeArtist)
				return err
			},
			path: "results.artistmatches.artist[0].name",
		},
		{
			name: "image size",
			json: `{"album":{"name":"x","artist":"y","url":"u","streamable":"0","image":[{"#text":"u","size":"gigantic"}]}}`,
			fn: func(n node) error {
				a, err := n.object("album")
				if err != nil {
					return err
				}
				_, err = normalizeAlbum(a)
				return err
			},
			path: "album.image[0].size",
		},
		{
			name: "album tags attr",
			json: `{"tags":{"tag":[]}}`,
			fn: func(n node) error {
				tg, err := n.object("tags")
				if err != nil {
					return err
				}
				_, err = normalizeAlbumTags(tg)
				return err
			},
			path: "tags.@attr",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(mustDecode(t, tt.json))
			se := schemaErr(t, err)
			if se.Path != tt.path {
				t.Errorf("Path = %q, want %q", se.Path, tt.path)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("message %q does not name the path", err.Error())
			}
		})
	}
}

func TestNormalizeAlbumTagsUntagged(t *testing.T) {
	n := mustDecode(t, `{"tags":{"#text":"\n","@attr":{"artist":"Cher","album":"Obscure"}}}`)
	tags, err := n.object("tags")
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	got, err := normalizeAlbumTags(tags)
	if err != nil {
		t.Fatalf("normalizeAlbumTags: %v", err)
	}
	if got.Tags != nil || got.Album != "Obscure" {
		t.Errorf("unexpected %+v", got)
	}
}

func TestNormalizeAlbumDetailWithoutTracks(t *testing.T) {
	n := mustDecode(t, `{"name":"x","artist":"y","url":"u","listeners":"1","playcount":"2","image":[]}`)
	d, err := normalizeAlbumDetail(n)
	if err != nil {
		t.Fatalf("normalizeAlbumDetail: %v", err)
	}
	if d.Tracks != nil {
		t.Errorf("Tracks = %+v, want nil", d.Tracks)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"a":1}`, false},
		{"object with whitespace", " {\"a\":1}\n", false},
		{"array", `[1,2]`, true},
		{"null", `null`, true},
		{"trailing", `{"a":1} {"b":2}`, true},
		{"truncated", `{"a":`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCacheable(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"artist":{}}`, true},
		{`{"error":6,"message":"Artist not found"}`, false},
		{`<html></html>`, false},
		{`[1]`, false},
	}
	for _, tt := range tests {
		if got := cacheable([]byte(tt.body)); got != tt.want {
			t.Errorf("cacheable(%s) = %v, want %v", tt.body, got, tt.want)
		}
	}
}
