package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	transmission "github.com/jfxdev/go-transmission"
)

// parseIDs accepts numeric ids, 40-character info hashes, or the single
// word "recent".
func parseIDs(args []string) (transmission.IDs, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "recent") {
		return transmission.RecentlyActive(), nil
	}

	var numbers []int64
	var hashes []string
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
			numbers = append(numbers, id)
			continue
		}
		if isInfoHash(arg) {
			hashes = append(hashes, strings.ToLower(arg))
			continue
		}
		return transmission.IDs{}, fmt.Errorf("invalid torrent id %q: expected a positive number or an info hash", arg)
	}

	switch {
	case len(numbers) == 0 && len(hashes) == 0:
		return transmission.IDs{}, nil
	case len(hashes) == 0:
		return transmission.IDList(numbers...), nil
	case len(numbers) == 0:
		return transmission.Hashes(hashes...), nil
	default:
		return transmission.Concat(transmission.IDList(numbers...), transmission.Hashes(hashes...)), nil
	}
}

func isInfoHash(value string) bool {
	if len(value) != 40 {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}
