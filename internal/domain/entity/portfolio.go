package entity

import (
	"time"

	"github.com/google/uuid"
)

// MediaAsset is a single photo or video attached to a portfolio item.
type MediaAsset struct {
	URL          string
	ThumbnailURL string // Optional smaller rendition for list views.
}

// PortfolioItem is a past-work showcase entry on a master profile.
// Only public items are exposed through search enrichment.
type PortfolioItem struct {
	ID          uuid.UUID
	MasterID    uuid.UUID
	Title       string
	Description string
	IsPublic    bool
	Media       []MediaAsset
	CreatedAt   time.Time
}

// PreviewURL returns the preferred preview for the item: the thumbnail of the
// first media asset when present, otherwise the full asset URL.
func (p *PortfolioItem) PreviewURL() string {
	if len(p.Media) == 0 {
		return ""
	}
	if p.Media[0].ThumbnailURL != "" {
		return p.Media[0].ThumbnailURL
	}

	return p.Media[0].URL
}
