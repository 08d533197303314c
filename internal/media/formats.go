package media

import (
	"fmt"
	"sort"
)

// LessFunc orders two formats for ranking; "less" means less preferred.
type LessFunc func(a, b Format) bool

// ByBitrate is the default ranking: higher bitrate preferred, unknown
// bitrate least preferred.
func ByBitrate(a, b Format) bool {
	return bitrateRank(a) < bitrateRank(b)
}

func bitrateRank(f Format) int {
	if f.Bitrate == nil {
		return -1
	}
	return *f.Bitrate
}

// SortFormats orders formats worst-first so the best rendition ends up
// last. The sort is stable: renditions the comparator cannot distinguish
// keep their original order. A nil less falls back to ByBitrate.
func SortFormats(formats []Format, less LessFunc) {
	if less == nil {
		less = ByBitrate
	}
	sort.SliceStable(formats, func(i, j int) bool {
		return less(formats[i], formats[j])
	})
}

// BestFormat returns the most preferred format of a sorted slice, or nil
// when there are none.
func BestFormat(formats []Format) *Format {
	if len(formats) == 0 {
		return nil
	}
	return &formats[len(formats)-1]
}

// FormatLabel creates a display string for a format, used in listings and
// fzf selection.
func FormatLabel(f Format) string {
	if f.Bitrate != nil {
		return fmt.Sprintf("%s (%d kbit/s)", f.PlayPath, *f.Bitrate)
	}
	return f.PlayPath
}
