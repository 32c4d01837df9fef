package lastfm

import (
	"context"
	"testing"
)

func TestSearchAlbum(t *testing.T) {
	srv := newTestServer(t)
	c := newStartedClient(t, srv)

	results, err := c.SearchAlbum(context.Background(), "Believe", WithLimit(2))
	if err != nil {
		t.Fatalf("SearchAlbum: %v", err)
	}
	if q := srv.lastQuery(); q.Get("album") != "Believe" || q.Get("limit") != "2" {
		t.Errorf("unexpected query %v", q)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	a := results[0]
	if a.Name != "Believe" || a.Artist != "Cher" || a.Streamable {
		t.Errorf("unexpected album %+v", a)
	}
	if a.MBID == nil || *a.MBID != "63b3a8ca-26f2-4e2b-b867-647a6ec2bebd" {
		t.Errorf("MBID = %v", a.MBID)
	}
	if len(a.Images) != 2 {
		t.Errorf("expected 2 images, got %d", len(a.Images))
	}

	b := results[1]
	if b.MBID != nil || !b.Streamable {
		t.Errorf("unexpected album %+v", b)
	}
}

func TestGetAlbumDetail(t *testing.T) {
	srv := newTestServer(t)
	c := newStartedClient(t, srv)

	d, err := c.GetAlbumDetail(context.Background(), "Cher", "Believe", WithUsername("rj"))
	if err != nil {
		t.Fatalf("GetAlbumDetail: %v", err)
	}
	q := srv.lastQuery()
	if q.Get("method") != "album.getinfo" || q.Get("artist") != "Cher" || q.Get("album") != "Believe" || q.Get("username") != "rj" {
		t.Errorf("unexpected query %v", q)
	}

	if d.Name != "Believe" || d.Artist != "Cher" || d.URL != "https://www.last.fm/music/Cher/Believe" {
		t.Errorf("unexpected identity %+v", d)
	}
	if d.Listeners != 445620 || d.Playcount != 3178421 {
		t.Errorf("Listeners=%d Playcount=%d", d.Listeners, d.Playcount)
	}
	if d.UserPlaycount == nil || *d.UserPlaycount != 5 {
		t.Errorf("UserPlaycount = %v", d.UserPlaycount)
	}
	if len(d.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(d.Tags))
	}
	if len(d.Images) != 2 || d.Images[1].Size == nil || *d.Images[1].Size != ImageMega {
		t.Errorf("unexpected images %+v", d.Images)
	}

	if len(d.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(d.Tracks))
	}
	first := d.Tracks[0]
	if first.Name != "Believe" || first.Rank != 1 {
		t.Errorf("unexpected track %+v", first)
	}
	if first.Duration == nil || *first.Duration != 239 {
		t.Errorf("Duration = %v", first.Duration)
	}
	if first.Streamable.FullTrack || first.Streamable.Text != "0" {
		t.Errorf("unexpected streamable %+v", first.Streamable)
	}
	if first.Artist.Name != "Cher" || first.Artist.MBID == nil {
		t.Errorf("unexpected track artist %+v", first.Artist)
	}

	second := d.Tracks[1]
	if second.Rank != 2 || second.Duration == nil || *second.Duration != 226 {
		t.Errorf("unexpected track %+v", second)
	}
	if !second.Streamable.FullTrack {
		t.Error("FullTrack should be true for \"1\"")
	}
	if second.Artist.MBID != nil {
		t.Errorf("empty track artist mbid should be absent")
	}

	if d.Wiki == nil {
		t.Fatal("expected wiki")
	}
	if d.Wiki.Published != "27 Jul 2008, 15:55" || d.Wiki.Summary == nil || d.Wiki.Content == nil {
		t.Errorf("unexpected wiki %+v", d.Wiki)
	}
}

func TestGetAlbumDetailSingleTrack(t *testing.T) {
	srv := newTestServer(t)
	c := newStartedClient(t, srv)

	d, err := c.GetAlbumDetail(context.Background(), "Cher", "Believe (Single)")
	if err != nil {
		t.Fatalf("GetAlbumDetail: %v", err)
	}
	if d.MBID != nil {
		t.Error("empty mbid should be absent")
	}
	if d.Tags != nil {
		t.Errorf("empty tags section should be absent, got %+v", d.Tags)
	}
	if d.UserPlaycount != nil {
		t.Error("UserPlaycount should be absent")
	}
	if d.Wiki != nil {
		t.Error("Wiki should be absent")
	}
	if len(d.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(d.Tracks))
	}
	tr := d.Tracks[0]
	if tr.Duration != nil {
		t.Errorf("null duration should be absent, got %d", *tr.Duration)
	}
	if tr.Rank != 1 || tr.Streamable.FullTrack {
		t.Errorf("unexpected track %+v", tr)
	}
}

func TestGetAlbumDetailByMBID(t *testing.T) {
	srv := newTestServer(t)
	c := newStartedClient(t, srv)

	if _, err := c.GetAlbumDetail(context.Background(), "", "", WithMBID("63b3a8ca-26f2-4e2b-b867-647a6ec2bebd")); err != nil {
		t.Fatalf("GetAlbumDetail: %v", err)
	}
	if got := srv.lastQuery().Get("mbid"); got != "63b3a8ca-26f2-4e2b-b867-647a6ec2bebd" {
		t.Errorf("mbid = %q", got)
	}
}

func TestGetAlbumTags(t *testing.T) {
	srv := newTestServer(t)
	c := newStartedClient(t, srv)

	tags, err := c.GetAlbumTags(context.Background(), "Cher", "Believe", WithUsername("rj"))
	if err != nil {
		t.Fatalf("GetAlbumTags: %v", err)
	}
	q := srv.lastQuery()
	if q.Get("method") != "album.gettags" || q.Get("user") != "rj" {
		t.Errorf("unexpected query %v", q)
	}
	if q.Has("username") {
		t.Error("album.gettags takes user, not username")
	}
	if tags.Artist != "Cher" || tags.Album != "Believe" {
		t.Errorf("unexpected attr %+v", tags)
	}
	if len(tags.Tags) != 2 || tags.Tags[0].Name != "pop" || tags.Tags[1].URL != "https://www.last.fm/tag/90s" {
		t.Errorf("unexpected tags %+v", tags.Tags)
	}
}
