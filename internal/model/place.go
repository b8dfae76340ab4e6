// Package model defines the canonical listing snapshot and score types
// exchanged between the fetch, scoring, and persistence layers.
package model

// Review is a single visitor review from the fetched sample (most recent
// first, capped at 30 by the source query).
type Review struct {
	Author     string  `json:"author"`
	Rating     float64 `json:"rating"`
	Content    string  `json:"content"`
	HasPhoto   bool    `json:"has_photo"`
	OwnerReply *string `json:"owner_reply"`
	// Date is the raw source string ("25.3.21.금", "3일 전", ...). It is
	// parsed lazily by the activity scorer, never at normalization time.
	Date string `json:"date"`
}

// MenuItem is one merged menu entry. Name is the natural key across the
// base and delivery-partner menu sources.
type MenuItem struct {
	Name             string  `json:"name"`
	Price            *int    `json:"price"`
	Description      *string `json:"description"`
	HasPhoto         bool    `json:"has_photo"`
	Group            *string `json:"group"`
	IsRepresentative bool    `json:"is_representative"`
}

// FeedEntry is one activity post. A placeholder entry with an empty Date
// means "known to have activity, date unknown" and is distinct from an
// empty feed list.
type FeedEntry struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	HasMedia bool   `json:"has_media"`
}

// PhotoStats aggregates image counts for a listing.
type PhotoStats struct {
	Business   int      `json:"business"`
	Visitor    int      `json:"visitor"`
	Categories []string `json:"categories"`
}

// ReviewStats aggregates review data for a listing.
type ReviewStats struct {
	Total     int     `json:"total"`
	AvgRating float64 `json:"avg_rating"`
	// OwnerReplyRate is computed over the fetched sample (len(Recent)),
	// not the platform-reported Total. Scoring thresholds were tuned
	// against the sample-based value; do not "fix" this to use Total.
	OwnerReplyRate float64  `json:"owner_reply_rate"`
	Recent         []Review `json:"recent"`
}

// PlaceRecord is the canonical, immutable snapshot of one listing.
// Records are constructed fresh per fetch and never mutated afterwards.
type PlaceRecord struct {
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Address      string      `json:"address"`
	Lat          *float64    `json:"lat"`
	Lng          *float64    `json:"lng"`
	Phone        string      `json:"phone"`
	Hours        []string    `json:"hours"`
	Description  string      `json:"description"`
	Introduction string      `json:"introduction"`
	Photos       PhotoStats  `json:"photos"`
	Reviews      ReviewStats `json:"reviews"`
	Menus        []MenuItem  `json:"menus"`
	Keywords     []string    `json:"keywords"`
	LastUpdate   string      `json:"last_update"`
	Feeds        []FeedEntry `json:"feeds"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (p *PlaceRecord) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// Intro returns the introduction text, falling back to the description.
func (p *PlaceRecord) Intro() string {
	if p.Introduction != "" {
		return p.Introduction
	}
	return p.Description
}
