// Package resolver wraps the SoundCloud v2 API: search queries and playlist
// ids in, item metadata plus directly playable stream URLs out. The core
// never depends on this package; it is glue consumed by the HTTP layer.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

type Client struct {
	BaseURL  string
	ClientID string
	HTTP     *http.Client
}

func NewClient(baseURL, clientID string) *Client {
	return &Client{
		BaseURL:  baseURL,
		ClientID: clientID,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

// TrackItem is the lookup result shape the frontend consumes.
type TrackItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Username     string  `json:"username"`
	ArtworkURL   string  `json:"artworkUrl"`
	PermalinkURL string  `json:"permalinkUrl"`
	DurationMs   int64   `json:"durationMs"`
	StreamURL    *string `json:"streamUrl"`
}

type PlaylistItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Username     string `json:"username"`
	ArtworkURL   string `json:"artworkUrl"`
	PermalinkURL string `json:"permalinkUrl"`
	TrackCount   int    `json:"trackCount"`
	Kind         string `json:"kind"`
}

// apiTrack mirrors just the fields we read from the upstream payload.
type apiTrack struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Duration     int64     `json:"duration"`
	ArtworkURL   string    `json:"artwork_url"`
	PermalinkURL string    `json:"permalink_url"`
	User         *apiUser  `json:"user"`
	Media        *apiMedia `json:"media"`
}

type apiUser struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type apiMedia struct {
	Transcodings []struct {
		URL    string `json:"url"`
		Format struct {
			Protocol string `json:"protocol"`
		} `json:"format"`
	} `json:"transcodings"`
}

type apiPlaylist struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	ArtworkURL   string   `json:"artwork_url"`
	PermalinkURL string   `json:"permalink_url"`
	TrackCount   int      `json:"track_count"`
	User         *apiUser `json:"user"`
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("soundcloud: unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// resolveStreamURL turns a progressive transcoding into a direct stream URL
// playable in an <audio> tag. Returns nil when no progressive rendition
// exists or resolution fails; the item is still usable without it.
func (c *Client) resolveStreamURL(ctx context.Context, media *apiMedia) *string {
	if media == nil {
		return nil
	}
	var progressive string
	for _, t := range media.Transcodings {
		if t.Format.Protocol == "progressive" {
			progressive = t.URL
			break
		}
	}
	if progressive == "" {
		return nil
	}

	u, err := url.Parse(progressive)
	if err != nil {
		return nil
	}
	q := u.Query()
	q.Set("client_id", c.ClientID)
	u.RawQuery = q.Encode()

	var data struct {
		URL string `json:"url"`
	}
	if err := c.getJSON(ctx, u.String(), &data); err != nil {
		log.Warn().Err(err).Str("module", "resolver").Msg("progressive resolve failed")
		return nil
	}
	if data.URL == "" {
		return nil
	}
	return &data.URL
}

func (c *Client) toItem(ctx context.Context, t apiTrack) TrackItem {
	item := TrackItem{
		ID:           t.ID,
		Title:        t.Title,
		ArtworkURL:   t.ArtworkURL,
		PermalinkURL: t.PermalinkURL,
		DurationMs:   t.Duration,
		StreamURL:    c.resolveStreamURL(ctx, t.Media),
	}
	if t.User != nil {
		item.Username = t.User.Username
		if item.ArtworkURL == "" {
			item.ArtworkURL = t.User.AvatarURL
		}
	}
	return item
}

// SearchTracks queries upstream and resolves each hit's stream URL.
func (c *Client) SearchTracks(ctx context.Context, q string, limit int) ([]TrackItem, error) {
	u := fmt.Sprintf("%s/search/tracks?q=%s&client_id=%s&limit=%d",
		c.BaseURL, url.QueryEscape(q), url.QueryEscape(c.ClientID), limit)
	var data struct {
		Collection []apiTrack `json:"collection"`
	}
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, err
	}
	items := make([]TrackItem, 0, len(data.Collection))
	for _, t := range data.Collection {
		items = append(items, c.toItem(ctx, t))
	}
	return items, nil
}

func (c *Client) SearchPlaylists(ctx context.Context, q string, limit int) ([]PlaylistItem, error) {
	u := fmt.Sprintf("%s/search/playlists?q=%s&client_id=%s&limit=%d",
		c.BaseURL, url.QueryEscape(q), url.QueryEscape(c.ClientID), limit)
	var data struct {
		Collection []apiPlaylist `json:"collection"`
	}
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, err
	}
	items := make([]PlaylistItem, 0, len(data.Collection))
	for _, p := range data.Collection {
		item := PlaylistItem{
			ID:           p.ID,
			Title:        p.Title,
			ArtworkURL:   p.ArtworkURL,
			PermalinkURL: p.PermalinkURL,
			TrackCount:   p.TrackCount,
			Kind:         "playlist",
		}
		if p.User != nil {
			item.Username = p.User.Username
			if item.ArtworkURL == "" {
				item.ArtworkURL = p.User.AvatarURL
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// fetchFullTrack backfills a compact playlist entry (id only) with the full
// track payload.
func (c *Client) fetchFullTrack(ctx context.Context, id int64) (*apiTrack, bool) {
	u := fmt.Sprintf("%s/tracks/%d?client_id=%s", c.BaseURL, id, url.QueryEscape(c.ClientID))
	var t apiTrack
	if err := c.getJSON(ctx, u, &t); err != nil {
		log.Warn().Err(err).Str("module", "resolver").Int64("track", id).Msg("full track fetch failed")
		return nil, false
	}
	return &t, true
}

// PlaylistTracks pages through a playlist and returns every track with its
// stream URL resolved. Compact entries are re-fetched individually.
func (c *Client) PlaylistTracks(ctx context.Context, id string) ([]TrackItem, error) {
	const limitPerPage = 200
	next := fmt.Sprintf("%s/playlists/%s?client_id=%s&representation=full&linked_partitioning=1&limit=%d",
		c.BaseURL, url.PathEscape(id), url.QueryEscape(c.ClientID), limitPerPage)

	var all []apiTrack
	for next != "" {
		var page struct {
			Tracks   []apiTrack `json:"tracks"`
			NextHref string     `json:"next_href"`
		}
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Tracks...)
		next = page.NextHref
		if next != "" {
			next += "&client_id=" + url.QueryEscape(c.ClientID)
		}
	}

	items := make([]TrackItem, 0, len(all))
	for _, t := range all {
		// Compact representation carries the id only.
		if t.Media == nil && t.PermalinkURL == "" {
			if full, ok := c.fetchFullTrack(ctx, t.ID); ok {
				t = *full
			} else {
				continue
			}
		}
		items = append(items, c.toItem(ctx, t))
	}
	return items, nil
}
