package provider

import (
	"github.com/gamefeed/gamefeed/app/extract"
	"github.com/gamefeed/gamefeed/app/store"
	"github.com/samber/lo"
)

// Rendered is a WP rendered-content wrapper.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Post is a raw post resource as the WP REST API returns it, with the
// optional _embedded payload requested via the _embed query parameter.
type Post struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Date          string    `json:"date"`
	Link          string    `json:"link"`
	Author        int       `json:"author"`
	FeaturedMedia int       `json:"featured_media"`
	Categories    []int     `json:"categories"`
	Tags          []int     `json:"tags"`
	Title         Rendered  `json:"title"`
	Content       Rendered  `json:"content"`
	Excerpt       Rendered  `json:"excerpt"`
	Embedded      *Embedded `json:"_embedded,omitempty"`
}

// Embedded carries the related entities inlined into a listing response.
// The first wp:term group holds categories, the second holds tags.
type Embedded struct {
	Author        []EmbeddedAuthor `json:"author"`
	FeaturedMedia []EmbeddedMedia  `json:"wp:featuredmedia"`
	Terms         [][]EmbeddedTerm `json:"wp:term"`
}

// EmbeddedAuthor is an inlined post author.
type EmbeddedAuthor struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	Slug       string            `json:"slug"`
	Link       string            `json:"link"`
	AvatarURLs map[string]string `json:"avatar_urls"`
}

// EmbeddedMedia is an inlined featured media resource.
type EmbeddedMedia struct {
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Sizes map[string]struct {
			SourceURL string `json:"source_url"`
		} `json:"sizes"`
	} `json:"media_details"`
}

// EmbeddedTerm is an inlined taxonomy term.
type EmbeddedTerm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Link string `json:"link"`
}

// GameFromPost assembles a Game out of a raw post. Pure: no I/O, never
// fails. Missing embedded data degrades to defaults (unknown author,
// empty term lists) instead of failing the transform.
func GameFromPost(p Post) store.Game {
	g := store.Game{
		ID:                 p.ID,
		Title:              extract.Normalize(p.Title.Rendered),
		Slug:               p.Slug,
		Description:        extract.Normalize(p.Content.Rendered),
		Excerpt:            extract.Normalize(p.Excerpt.Rendered),
		PublishedDate:      p.Date,
		Author:             store.UnknownAuthor(),
		DownloadLinks:      extract.Links(p.Content.Rendered),
		SystemRequirements: extract.Requirements(p.Content.Rendered),
		Permalink:          p.Link,
		MediaGallery:       extract.Gallery(p.Content.Rendered),
	}

	if p.Embedded == nil {
		return g
	}

	if len(p.Embedded.Author) > 0 {
		a := p.Embedded.Author[0]
		g.Author = store.Author{
			ID:           a.ID,
			Name:         a.Name,
			Slug:         a.Slug,
			Link:         a.Link,
			AvatarSmall:  a.AvatarURLs["24"],
			AvatarMedium: a.AvatarURLs["48"],
			AvatarLarge:  a.AvatarURLs["96"],
		}
	}

	if len(p.Embedded.FeaturedMedia) > 0 {
		m := p.Embedded.FeaturedMedia[0]
		g.CoverImage = m.SourceURL
		g.Thumbnail = m.SourceURL
		if thumb, ok := m.MediaDetails.Sizes["thumbnail"]; ok && thumb.SourceURL != "" {
			g.Thumbnail = thumb.SourceURL
		}
	}

	if len(p.Embedded.Terms) > 0 {
		g.Categories = lo.Map(p.Embedded.Terms[0], func(t EmbeddedTerm, _ int) store.Category {
			return store.Category{ID: t.ID, Name: t.Name, Slug: t.Slug, Link: t.Link}
		})
	}
	if len(p.Embedded.Terms) > 1 {
		g.Tags = lo.Map(p.Embedded.Terms[1], func(t EmbeddedTerm, _ int) store.Tag {
			return store.Tag{ID: t.ID, Name: t.Name, Slug: t.Slug, Link: t.Link}
		})
	}

	return g
}
