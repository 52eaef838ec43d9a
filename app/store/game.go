// Package store contains entities assembled from raw posts.
package store

import "errors"

// ErrNotFound is an error that is returned when the requested entity is not found.
var ErrNotFound = errors.New("not found")

// LinkKind classifies a download link by hosting service or
// alternative-link ordinal.
type LinkKind string

// Closed set of download link kinds.
const (
	KindDirect      LinkKind = "direct"
	KindDirect1     LinkKind = "direct1"
	KindDirect2     LinkKind = "direct2"
	KindDirect3     LinkKind = "direct3"
	KindTorrent     LinkKind = "torrent"
	KindMediafire   LinkKind = "mediafire"
	KindGoogleDrive LinkKind = "googledrive"
	KindPixeldrain  LinkKind = "pixeldrain"
	KindTurbobit    LinkKind = "turbobit"
	// KindOther is a reserved catch-all, not produced by the current
	// classification rules.
	KindOther LinkKind = "other"
)

// DownloadLink is a single download anchor extracted from a post body.
// Label is plain text; a link wrapped in struck-through markup in the
// source is marked unavailable.
type DownloadLink struct {
	Kind      LinkKind `json:"kind"`
	URL       string   `json:"url"`
	Label     string   `json:"label"`
	Available bool     `json:"available"`
}

// Requirements holds system requirements pulled out of a post body.
// An empty string means the field was not found in the source text.
type Requirements struct {
	OS         string `json:"os"`
	CPU        string `json:"cpu"`
	GPU        string `json:"gpu"`
	RAM        string `json:"ram"`
	Storage    string `json:"storage"`
	DirectX    string `json:"directx,omitempty"`
	Additional string `json:"additional,omitempty"`
}

// Empty reports whether none of the primary fields were extracted.
func (r Requirements) Empty() bool {
	return r.OS == "" && r.CPU == "" && r.GPU == "" &&
		r.RAM == "" && r.Storage == "" && r.DirectX == ""
}

// Category is a flat taxonomy term attached to a game.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Link string `json:"link"`
}

// Tag is a flat taxonomy term attached to a game.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Link string `json:"link"`
}

// Author is the author of a post.
type Author struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Link         string `json:"link"`
	AvatarSmall  string `json:"avatar_small"`
	AvatarMedium string `json:"avatar_medium"`
	AvatarLarge  string `json:"avatar_large"`
}

// UnknownAuthor is the fallback for posts without embedded author data.
func UnknownAuthor() Author { return Author{Name: "Unknown"} }

// Game is the canonical record reconstructed from a raw post. Title,
// Description and Excerpt are always plain text. A Game is built fresh on
// every transformation and never mutated afterwards.
type Game struct {
	ID                 int            `json:"id"`
	Title              string         `json:"title"`
	Slug               string         `json:"slug"`
	CoverImage         string         `json:"cover_image"`
	Thumbnail          string         `json:"thumbnail"`
	Description        string         `json:"description"`
	Excerpt            string         `json:"excerpt"`
	PublishedDate      string         `json:"published_date"`
	Author             Author         `json:"author"`
	Categories         []Category     `json:"categories"`
	Tags               []Tag          `json:"tags"`
	DownloadLinks      []DownloadLink `json:"download_links"`
	SystemRequirements *Requirements  `json:"system_requirements,omitempty"`
	Permalink          string         `json:"permalink"`
	MediaGallery       []string       `json:"media_gallery"`
}
