package model

// Item is a lost or found item reported by a user.
type Item struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Date        Timestamp `json:"date"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Reporter    *UserRef  `json:"reporter,omitempty"`
	Status      string    `json:"status"`
	ReportType  string    `json:"reportType,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// Item statuses.
const (
	ItemStatusFound   = "found"
	ItemStatusPending = "pending"
	ItemStatusClaimed = "claimed"
)

// Report types.
const (
	ReportLost  = "lost"
	ReportFound = "found"
)

// CategoryAll is the search filter value meaning "no category filter".
const CategoryAll = "All"

// Categories lists the item categories in display order.
var Categories = []string{
	"Electronics",
	"Books",
	"ID Cards",
	"Clothing",
	"Wallets & Bags",
	"Other",
}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ReportedBy reports whether userID reported the item.
func (i *Item) ReportedBy(userID string) bool {
	return i.Reporter != nil && userID != "" && i.Reporter.ID == userID
}
