package listing

import (
	"strconv"
	"strings"

	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/pkg/naver"
)

const maxReviews = 30

const feedTitle = "소식"

// Normalize merges the structured response and the extracted feed dates
// into the canonical PlaceRecord. Missing numeric fields become zero
// values, missing arrays become empty; neither is an error. The returned
// record is immutable by convention.
func Normalize(d *naver.PlaceDetail, feedDates []string) *model.PlaceRecord {
	base := d.Base

	reviews := buildReviews(d)
	replied := 0
	visitorPhotos := 0
	for _, r := range reviews {
		if r.OwnerReply != nil {
			replied++
		}
		if r.HasPhoto {
			visitorPhotos++
		}
	}
	replyRate := 0.0
	if len(reviews) > 0 {
		// Over the fetched sample, not the platform total; see the
		// OwnerReplyRate doc comment.
		replyRate = float64(replied) / float64(len(reviews))
	}

	description := ""
	if len(base.MicroReviews) > 0 {
		description = base.MicroReviews[0]
	}

	keywords := d.Keywords
	if len(keywords) == 0 && d.VisitorReviewStats != nil && d.VisitorReviewStats.Analysis != nil {
		for _, theme := range d.VisitorReviewStats.Analysis.Themes {
			if theme.Label == "" {
				continue
			}
			keywords = append(keywords, theme.Label)
			if len(keywords) == 10 {
				break
			}
		}
	}

	feeds := make([]model.FeedEntry, 0, len(feedDates))
	for _, date := range feedDates {
		feeds = append(feeds, model.FeedEntry{Title: feedTitle, Category: "feed", Date: date})
	}
	// feedExist with zero extracted dates means "known to have activity,
	// date unknown": one placeholder entry, distinct from no activity.
	if d.HasFeed != nil && d.HasFeed.FeedExist && len(feeds) == 0 {
		feeds = append(feeds, model.FeedEntry{Title: feedTitle, Category: "feed", Date: ""})
	}

	lastUpdate := ""
	switch {
	case len(feedDates) > 0:
		lastUpdate = feedDates[0]
	case len(reviews) > 0:
		lastUpdate = reviews[0].Date
	}

	record := &model.PlaceRecord{
		Name:         base.Name,
		Category:     base.Category,
		Address:      firstNonEmpty(base.RoadAddress, base.Address),
		Phone:        firstNonEmpty(base.VirtualPhone, base.Phone),
		Hours:        buildHours(d.NewBusinessHours),
		Description:  description,
		Introduction: description,
		Photos: model.PhotoStats{
			Business:   imageTotal(d.Images),
			Visitor:    visitorPhotos,
			Categories: []string{},
		},
		Reviews: model.ReviewStats{
			Total:          base.VisitorReviewsTotal,
			AvgRating:      base.VisitorReviewsScore,
			OwnerReplyRate: replyRate,
			Recent:         reviews,
		},
		Menus:      MergeMenus(d.Menus, d.Baemin),
		Keywords:   keywords,
		LastUpdate: lastUpdate,
		Feeds:      feeds,
	}

	if base.Coordinate != nil {
		record.Lat = parseCoord(base.Coordinate.Y)
		record.Lng = parseCoord(base.Coordinate.X)
	}

	return record
}

// buildHours flattens the hour groups into one string per (day, time,
// note) combination, deduplicated exactly, preserving first-seen order.
func buildHours(groups []naver.HourGroup) []string {
	seen := make(map[string]bool)
	var hours []string
	for _, group := range groups {
		for _, h := range group.BusinessHours {
			var timeStr string
			if h.BusinessHours != nil {
				start, end := h.BusinessHours.Start, h.BusinessHours.End
				switch {
				case start != "" && end != "":
					timeStr = start + "~" + end
				case start != "":
					timeStr = start
				default:
					timeStr = end
				}
			}
			if timeStr == "" && h.Description == "" {
				continue
			}

			var result string
			switch {
			case h.Day != "" && timeStr != "":
				result = h.Day + " " + timeStr
			case h.Day != "":
				result = h.Day
			default:
				result = timeStr
			}
			if h.Description != "" {
				result += " (" + h.Description + ")"
			}

			if result != "" && !seen[result] {
				seen[result] = true
				hours = append(hours, result)
			}
		}
	}
	return hours
}

func buildReviews(d *naver.PlaceDetail) []model.Review {
	if d.VisitorReviews == nil {
		return nil
	}
	items := d.VisitorReviews.Items
	if len(items) > maxReviews {
		items = items[:maxReviews]
	}

	reviews := make([]model.Review, 0, len(items))
	for _, r := range items {
		content := r.Body
		if content == "" {
			var labels []string
			for _, k := range r.VotedKeywords {
				labels = append(labels, k.Name)
			}
			content = strings.Join(labels, ", ")
		}

		review := model.Review{
			Author:   firstNonEmpty(r.Nickname, "익명"),
			Rating:   r.Rating,
			Content:  content,
			HasPhoto: len(r.Media) > 0,
			Date:     firstNonEmpty(r.Visited, r.Created),
		}
		if r.Reply != nil && r.Reply.Body != "" {
			review.OwnerReply = strptr(r.Reply.Body)
		}
		reviews = append(reviews, review)
	}
	return reviews
}

func imageTotal(img *naver.Images) int {
	if img == nil {
		return 0
	}
	return img.TotalImages
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
