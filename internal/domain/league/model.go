package league

import "fmt"

// League is one competition in the allow-list catalog.
type League struct {
	ID            int64  `json:"id"`
	LocalizedName string `json:"localized_name"`
	ReferenceName string `json:"reference_name"`
	// DisplayRank is 1-based; 0 means the league is not in the priority list.
	DisplayRank int    `json:"display_rank,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id must be positive")
	}
	if l.ReferenceName == "" {
		return fmt.Errorf("league %d reference name is required", l.ID)
	}
	return nil
}
