// Package media defines shared types for the nowgrab application.
package media

// Format describes one playable rendition of a video: the connection
// parameters an RTMP client needs to establish a session, plus an
// optional bitrate used for quality ranking.
type Format struct {
	URL       string `json:"url"`               // streaming server endpoint, e.g. "rtmpe://fms.rtl.de"
	App       string `json:"app"`               // application namespace on the server
	PlayPath  string `json:"play_path"`         // asset locator within the app, e.g. "mp4:show/episode.f4v"
	Ext       string `json:"ext"`               // container announced to the playback client
	PageURL   string `json:"page_url"`          // referring page presented during the handshake
	PlayerURL string `json:"player_url"`        // SWF player reference
	Bitrate   *int   `json:"bitrate,omitempty"` // kbit/s; nil when the API omits it
}

// Info is the normalized extraction result handed to the download pipeline.
// Timestamp and Duration are nil when the API did not provide a parseable
// value; a zero there would be indistinguishable from a real epoch/length.
type Info struct {
	ID          string   `json:"id"`
	DisplayID   string   `json:"display_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Timestamp   *int64   `json:"timestamp,omitempty"` // unix seconds of the original broadcast
	Duration    *int64   `json:"duration,omitempty"`  // seconds
	Formats     []Format `json:"formats"`             // sorted worst-first, best last
}

// DownloadEntry records one completed download in the log.
type DownloadEntry struct {
	ID         string // numeric video id
	DisplayID  string
	Title      string
	Bitrate    int    // kbit/s, 0 when unknown
	Path       string // where the file ended up
	Downloaded int64  // unix seconds
}
