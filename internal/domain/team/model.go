package team

import (
	"fmt"
	"strings"
	"time"
)

const (
	SourceWikidata = "wikidata"

	displaySeparator = " | "
)

// IndexEntry maps a provider team id to its reference name as last seen in fixtures.
type IndexEntry struct {
	TeamID        int64
	ReferenceName string
	LastSeenAt    time.Time
}

// Name is a resolved localized team name. Once stored it is never replaced.
type Name struct {
	TeamID        int64
	LocalizedName string
	ReferenceName string
	Source        string
	ResolvedAt    time.Time
}

func (n Name) Validate() error {
	if n.TeamID <= 0 {
		return fmt.Errorf("team id must be positive")
	}
	if strings.TrimSpace(n.LocalizedName) == "" {
		return fmt.Errorf("team %d localized name is required", n.TeamID)
	}
	return nil
}

// Failure marks a team whose lookup failed; it is never queued again.
type Failure struct {
	TeamID        int64
	ReferenceName string
	FailedAt      time.Time
}

// DisplayName renders "localized | reference", or just reference when nothing is resolved.
func DisplayName(localized, reference string) string {
	localized = strings.TrimSpace(localized)
	reference = strings.TrimSpace(reference)
	switch {
	case localized == "":
		return reference
	case reference == "" || localized == reference:
		return localized
	default:
		return localized + displaySeparator + reference
	}
}

// ReferenceFromDisplay strips a rendered localized prefix.
func ReferenceFromDisplay(display string) string {
	if _, ref, ok := strings.Cut(display, displaySeparator); ok {
		return strings.TrimSpace(ref)
	}
	return strings.TrimSpace(display)
}
