package model

// Claim is a user's assertion of ownership over a found item.
type Claim struct {
	ID            string    `json:"_id"`
	Item          *Item     `json:"item,omitempty"`
	Claimant      *UserRef  `json:"claimant,omitempty"`
	Justification string    `json:"justification"`
	ProofImageURL string    `json:"proofImageUrl,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     Timestamp `json:"createdAt"`
}

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// ValidDecision reports whether d is a decision an administrator can make.
func ValidDecision(d string) bool {
	return d == ClaimStatusApproved || d == ClaimStatusRejected
}
