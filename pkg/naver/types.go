package naver

// GraphQL wire types for the place-detail query. Field names follow the
// source API; numeric-looking fields (price, coordinates) arrive as strings
// and are parsed by the normalizer, not here.

// Coordinate is the listing's position. X is longitude, Y is latitude.
type Coordinate struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Base holds the listing's core fields. An empty Name marks the whole
// response as unusable.
type Base struct {
	Name                string      `json:"name"`
	Category            string      `json:"category"`
	Address             string      `json:"address"`
	RoadAddress         string      `json:"roadAddress"`
	Phone               string      `json:"phone"`
	VirtualPhone        string      `json:"virtualPhone"`
	MicroReviews        []string    `json:"microReviews"`
	VisitorReviewsTotal int         `json:"visitorReviewsTotal"`
	VisitorReviewsScore float64     `json:"visitorReviewsScore"`
	Coordinate          *Coordinate `json:"coordinate"`
}

// TimeRange is a start/end pair within a business-hour entry.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayHours is one day row inside a business-hour group.
type DayHours struct {
	Day           string     `json:"day"`
	Description   string     `json:"description"`
	BusinessHours *TimeRange `json:"businessHours"`
}

// HourGroup is a named group of per-day business hours.
type HourGroup struct {
	Name          string     `json:"name"`
	BusinessHours []DayHours `json:"businessHours"`
}

// BaseMenu is one entry of the listing's own menu board.
type BaseMenu struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Recommend   bool     `json:"recommend"`
	Priority    int      `json:"priority"`
}

// PartnerMenu is one entry of the delivery-partner menu structure.
type PartnerMenu struct {
	Name             string   `json:"name"`
	Price            string   `json:"price"`
	Desc             string   `json:"desc"`
	Images           []string `json:"images"`
	IsRepresentative bool     `json:"isRepresentative"`
}

// PartnerMenuGroup is a named delivery-partner menu group.
type PartnerMenuGroup struct {
	Name             string        `json:"name"`
	IsRepresentative bool          `json:"isRepresentative"`
	Menus            []PartnerMenu `json:"menus"`
}

// Partner wraps the delivery-partner menu groups. Optional in the response.
type Partner struct {
	MenuGroups []PartnerMenuGroup `json:"menuGroups"`
}

// Images carries aggregate image counts.
type Images struct {
	TotalImages int `json:"totalImages"`
}

// HasFeed flags whether the listing has activity posts at all; the feed
// dates themselves are only available from the feed page.
type HasFeed struct {
	FeedExist bool `json:"feedExist"`
}

// ReviewMedia is one media attachment on a review.
type ReviewMedia struct {
	Type      string `json:"type"`
	Thumbnail string `json:"thumbnail"`
}

// ReviewReply is the owner's reply on a review.
type ReviewReply struct {
	Body string `json:"body"`
}

// VotedKeyword is a reviewer-voted keyword label.
type VotedKeyword struct {
	Name string `json:"name"`
}

// VisitorReview is one review item from the capped most-recent page.
type VisitorReview struct {
	ID            string         `json:"id"`
	Rating        float64        `json:"rating"`
	Body          string         `json:"body"`
	Nickname      string         `json:"nickname"`
	VisitCount    int            `json:"visitCount"`
	Created       string         `json:"created"`
	Visited       string         `json:"visited"`
	Media         []ReviewMedia  `json:"media"`
	Reply         *ReviewReply   `json:"reply"`
	VotedKeywords []VotedKeyword `json:"votedKeywords"`
}

// VisitorReviews is the review page plus the platform-wide total.
type VisitorReviews struct {
	Items []VisitorReview `json:"items"`
	Total int             `json:"total"`
}

// ReviewTheme is an aggregate review-theme label.
type ReviewTheme struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReviewAnalysis wraps the aggregate review themes.
type ReviewAnalysis struct {
	Themes []ReviewTheme `json:"themes"`
}

// VisitorReviewStats wraps the review analysis block.
type VisitorReviewStats struct {
	Analysis *ReviewAnalysis `json:"analysis"`
}

// PlaceDetail is the full structured response for one listing.
type PlaceDetail struct {
	Base               *Base               `json:"base"`
	NewBusinessHours   []HourGroup         `json:"newBusinessHours"`
	Menus              []BaseMenu          `json:"menus"`
	Baemin             *Partner            `json:"baemin"`
	Images             *Images             `json:"images"`
	HasFeed            *HasFeed            `json:"hasFeed"`
	Keywords           []string            `json:"keywords"`
	VisitorReviews     *VisitorReviews     `json:"visitorReviews"`
	VisitorReviewStats *VisitorReviewStats `json:"visitorReviewStats"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data struct {
		PlaceDetail *PlaceDetail `json:"placeDetail"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}
