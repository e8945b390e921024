package transmission

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const magnetPrefix = "magnet:?"

// ParseMagnetLink extracts information from a magnet link
func ParseMagnetLink(magnetURI string) (*MagnetLink, error) {
	if !strings.HasPrefix(magnetURI, magnetPrefix) {
		return nil, errors.New("invalid magnet link format")
	}

	values, err := url.ParseQuery(strings.TrimPrefix(magnetURI, magnetPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse magnet link query")
	}

	magnet := &MagnetLink{
		DisplayName:      values.Get("dn"),
		Trackers:         values["tr"],
		ExactLength:      values.Get("xl"),
		ExactSource:      values.Get("xs"),
		Keywords:         values.Get("kt"),
		AcceptableSource: values.Get("as"),
	}

	// Hybrid torrents carry both a v1 (btih) and a v2 (btmh) topic; prefer v1
	for _, topic := range values["xt"] {
		switch {
		case strings.HasPrefix(topic, "urn:btih:"):
			magnet.Hash = strings.TrimPrefix(topic, "urn:btih:")
		case strings.HasPrefix(topic, "urn:btmh:") && magnet.Hash == "":
			magnet.Hash = strings.TrimPrefix(topic, "urn:btmh:")
		}
	}

	return magnet, nil
}

// Magnet parses the torrent's "magnetLink" field. The field must have been
// requested from GetTorrents.
func (t Torrent) Magnet() (*MagnetLink, error) {
	if t.MagnetLink == "" {
		return nil, errors.Errorf("torrent %d has no magnet link", t.ID)
	}
	return ParseMagnetLink(t.MagnetLink)
}
