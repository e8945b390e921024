package transmission

import (
	"reflect"
	"testing"
)

func TestParseMagnetLink(t *testing.T) {
	uri := "magnet:?xt=urn:btih:c12fe1c06bba254a9dc9f519b335aa7c1367a88a" +
		"&dn=ubuntu-24.04-desktop-amd64.iso" +
		"&tr=udp%3A%2F%2Ftracker.example.org%3A1337" +
		"&tr=http%3A%2F%2Ftracker.example.com%2Fannounce" +
		"&xl=6114656256"

	magnet, err := ParseMagnetLink(uri)
	if err != nil {
		t.Fatalf("ParseMagnetLink failed: %v", err)
	}

	if magnet.Hash != "c12fe1c06bba254a9dc9f519b335aa7c1367a88a" {
		t.Errorf("Unexpected hash: %s", magnet.Hash)
	}
	if magnet.DisplayName != "ubuntu-24.04-desktop-amd64.iso" {
		t.Errorf("Unexpected display name: %s", magnet.DisplayName)
	}
	if magnet.ExactLength != "6114656256" {
		t.Errorf("Unexpected exact length: %s", magnet.ExactLength)
	}

	expectedTrackers := []string{"udp://tracker.example.org:1337", "http://tracker.example.com/announce"}
	if !reflect.DeepEqual(magnet.Trackers, expectedTrackers) {
		t.Errorf("Expected trackers %v, got %v", expectedTrackers, magnet.Trackers)
	}
}

func TestParseMagnetLinkHybrid(t *testing.T) {
	testCases := []struct {
		name string
		uri  string
		hash string
	}{
		{"v1 first", "magnet:?xt=urn:btih:aaaa&xt=urn:btmh:1220bbbb", "aaaa"},
		{"v2 first", "magnet:?xt=urn:btmh:1220bbbb&xt=urn:btih:aaaa", "aaaa"},
		{"v2 only", "magnet:?xt=urn:btmh:1220bbbb", "1220bbbb"},
		{"no topic", "magnet:?dn=nothing", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			magnet, err := ParseMagnetLink(tc.uri)
			if err != nil {
				t.Fatalf("ParseMagnetLink failed: %v", err)
			}
			if magnet.Hash != tc.hash {
				t.Errorf("Expected hash %q, got %q", tc.hash, magnet.Hash)
			}
		})
	}
}

func TestParseMagnetLinkInvalid(t *testing.T) {
	for _, uri := range []string{"", "http://example.com/file.torrent", "magnet:?xt=%zz"} {
		if _, err := ParseMagnetLink(uri); err == nil {
			t.Errorf("%q: expected an error", uri)
		}
	}
}

func TestTorrentMagnet(t *testing.T) {
	torrent := Torrent{ID: 7, MagnetLink: "magnet:?xt=urn:btih:deadbeef&dn=demo"}

	magnet, err := torrent.Magnet()
	if err != nil {
		t.Fatalf("Magnet failed: %v", err)
	}
	if magnet.Hash != "deadbeef" || magnet.DisplayName != "demo" {
		t.Errorf("Unexpected magnet: %+v", magnet)
	}

	if _, err := (Torrent{ID: 8}).Magnet(); err == nil {
		t.Error("Expected an error for a torrent without a magnet link")
	}
}
