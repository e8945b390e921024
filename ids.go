package transmission

import (
	"encoding/json"
)

// recentlyActive selects torrents changed since the daemon's last poll.
const recentlyActive = "recently-active"

// IDs selects the torrents an RPC call applies to. The zero value selects
// nothing and is left out of the request, which the daemon reads as "all
// torrents" for most methods.
type IDs struct {
	value any
}

// AllTorrents is the explicit "every torrent" selector (sent as 0).
var AllTorrents = IDs{value: 0}

// IDList selects torrents by numeric id.
func IDList(ids ...int64) IDs {
	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, id)
	}
	return IDs{value: list}
}

// Hashes selects torrents by info hash.
func Hashes(hashes ...string) IDs {
	list := make([]any, 0, len(hashes))
	for _, h := range hashes {
		list = append(list, h)
	}
	return IDs{value: list}
}

// RecentlyActive selects torrents that changed recently.
func RecentlyActive() IDs {
	return IDs{value: recentlyActive}
}

// Concat merges numeric id and hash selectors into one list. Non-list
// selectors are skipped, so the result always encodes as an array.
func Concat(selectors ...IDs) IDs {
	list := []any{}
	for _, s := range selectors {
		if items, ok := s.value.([]any); ok {
			list = append(list, items...)
		}
	}
	return IDs{value: list}
}

// IsZero reports whether no selector was set. Used by encoding/json's omitzero.
func (i IDs) IsZero() bool {
	return i.value == nil
}

// Len returns how many torrents a list selector names; -1 for non-list
// selectors such as AllTorrents or RecentlyActive.
func (i IDs) Len() int {
	if items, ok := i.value.([]any); ok {
		return len(items)
	}
	if i.value == nil {
		return 0
	}
	return -1
}

// empty reports whether the selector names no torrent at all: unset, or a
// list with no entries.
func (i IDs) empty() bool {
	return i.Len() == 0
}

func (i IDs) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.value)
}
