package extractor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"

	"nowgrab/internal/httputil"
	"nowgrab/internal/media"
	"nowgrab/internal/parse"
)

// Fixed RTMP connection parameters shared by every NowTV rendition. The
// f4v sources are announced to the client as flv; that mismatch is the
// streaming server's convention, not ours.
const (
	nowtvRTMPEndpoint = "rtmpe://fms.rtl.de"
	nowtvPageURL      = "http://rtlnow.rtl.de"
	nowtvPlayerURL    = "http://cdn.static-fra.de/now/vodplayer.swf"
)

// DefaultAPIBase is the production metadata endpoint.
const DefaultAPIBase = "https://api.nowtv.de"

// movieFields is the field list requested from the movies endpoint.
const movieFields = "id,title,free,geoblocked,articleLong,articleShort,broadcastStartDate,seoUrl,duration,format,files"

// nowtvURLPattern matches watch pages across the three country domains.
// The capture group is the slug path between the channel segment and the
// trailing player/preview segment.
var nowtvURLPattern = regexp.MustCompile(`^https?://(?:www\.)?nowtv\.(?:de|at|ch)/(?:rtl|rtl2|rtlnitro|superrtl|ntv|vox)/(.+?)/(?:player|preview)`)

// NowTV extracts video metadata from nowtv.de watch pages.
type NowTV struct {
	apiBase string
	client  *http.Client
}

// NewNowTV creates a NowTV extractor. Empty apiBase selects the production
// endpoint; a nil client gets the hardened default.
func NewNowTV(apiBase string, client *http.Client) *NowTV {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if client == nil {
		client = httputil.NewClient()
	}
	return &NowTV{
		apiBase: strings.TrimRight(apiBase, "/"),
		client:  client,
	}
}

func (n *NowTV) Name() string { return "nowtv" }

// Match reports whether rawURL is a NowTV watch page.
func (n *NowTV) Match(rawURL string) bool {
	return nowtvURLPattern.MatchString(rawURL)
}

// movieResponse mirrors the movies endpoint payload. Fields whose absence
// matters are typed so absence stays distinguishable: id arrives as number
// or string, free must be explicitly false to mean paywalled, bitrate may
// be missing or garbled per file.
type movieResponse struct {
	ID                 any    `json:"id"`
	Title              string `json:"title"`
	Free               *bool  `json:"free"`
	Geoblocked         bool   `json:"geoblocked"`
	ArticleLong        string `json:"articleLong"`
	ArticleShort       string `json:"articleShort"`
	BroadcastStartDate string `json:"broadcastStartDate"`
	Duration           string `json:"duration"`
	Format             struct {
		DefaultImage169Format string `json:"defaultImage169Format"`
		DefaultImage169Logo   string `json:"defaultImage169Logo"`
	} `json:"format"`
	Files struct {
		Items []movieFile `json:"items"`
	} `json:"files"`
}

type movieFile struct {
	Path    string `json:"path"`
	Bitrate any    `json:"bitrate"`
}

// Extract fetches and normalizes metadata for a watch-page URL.
func (n *NowTV) Extract(rawURL string) (*media.Info, error) {
	m := nowtvURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, fmt.Errorf("%q: %w", rawURL, ErrUnsupportedURL)
	}

	displayID := deriveDisplayID(m[1])

	movie, err := n.fetchMovie(displayID)
	if err != nil {
		return nil, err
	}

	videoID, ok := idString(movie.ID)
	if !ok {
		return nil, fmt.Errorf("movie %s: %w: missing id", displayID, ErrMalformed)
	}
	if movie.Title == "" {
		return nil, fmt.Errorf("movie %s: %w: missing title", displayID, ErrMalformed)
	}

	if len(movie.Files.Items) == 0 {
		// Geoblocking is reported preferentially when both flags apply.
		if movie.Geoblocked {
			return nil, fmt.Errorf("video %s is %w", videoID, ErrGeoRestricted)
		}
		if movie.Free != nil && !*movie.Free {
			return nil, fmt.Errorf("video %s is %w", videoID, ErrPaywalled)
		}
	}

	formats := nowtvFormats(movie.Files.Items)
	media.SortFormats(formats, nil)

	info := &media.Info{
		ID:          videoID,
		DisplayID:   displayID,
		Title:       movie.Title,
		Description: firstNonEmpty(movie.ArticleLong, movie.ArticleShort),
		Thumbnail:   firstNonEmpty(movie.Format.DefaultImage169Format, movie.Format.DefaultImage169Logo),
		Formats:     formats,
	}
	if ts, ok := parse.ISO8601(movie.BroadcastStartDate); ok {
		info.Timestamp = &ts
	}
	if d, ok := parse.Duration(movie.Duration); ok {
		info.Duration = &d
	}
	return info, nil
}

// deriveDisplayID collapses a multi-segment slug to its first and last
// segments. The guard is a character-length check on the raw slug, not a
// segment count; it reads wrong but the collapsed value doubles as the API
// lookup key, so published identifiers depend on it staying this way.
func deriveDisplayID(slug string) string {
	parts := strings.Split(slug, "/")
	if len(slug) > 2 && len(parts) > 1 {
		return parts[0] + "/" + parts[len(parts)-1]
	}
	return slug
}

// fetchMovie reads the movie document from the metadata API.
func (n *NowTV) fetchMovie(displayID string) (*movieResponse, error) {
	apiURL := fmt.Sprintf("%s/v3/movies/%s?fields=%s", n.apiBase, httputil.EscapePath(displayID), movieFields)

	body, err := httputil.GetJSON(n.client, apiURL)
	if err != nil {
		return nil, fmt.Errorf("fetching movie %s: %w", displayID, err)
	}

	var movie movieResponse
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, fmt.Errorf("movie %s: %w: %v", displayID, ErrMalformed, err)
	}
	return &movie, nil
}

// nowtvFormats keeps the f4v renditions and rewrites each path into the
// app + play-path pair the RTMP handshake wants. Descriptors with any
// other extension are not playable over RTMP and are dropped.
func nowtvFormats(items []movieFile) []media.Format {
	var formats []media.Format
	for _, item := range items {
		if ext(item.Path) != "f4v" {
			continue
		}
		app, playPath, ok := strings.Cut(strings.TrimPrefix(item.Path, "/"), "/")
		if !ok {
			// No app/play-path boundary; nothing to hand the client.
			continue
		}
		formats = append(formats, media.Format{
			URL:       nowtvRTMPEndpoint,
			App:       app,
			PlayPath:  "mp4:" + playPath,
			Ext:       "flv",
			PageURL:   nowtvPageURL,
			PlayerURL: nowtvPlayerURL,
			Bitrate:   parse.IntOrNone(item.Bitrate),
		})
	}
	return formats
}

// ext returns the lowercased extension of the final path segment, without
// the dot.
func ext(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

// idString normalizes the API id, which arrives as a JSON number or
// string, into the string form used everywhere downstream.
func idString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		if id != "" {
			return id, true
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case json.Number:
		return id.String(), true
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
