// Package dupscan finds person records that share a normalized name.
//
// Matching is a heuristic: two different people with the same name collide.
// Every later occurrence of a name is paired with the first record seen under
// that name, so N records with one name produce N-1 groups.
package dupscan

import (
	"time"

	"github.com/PratikDhanave/sponsorship-service/internal/models"
)

// Entry summarizes one side of a duplicate group.
type Entry struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	CreatedAt *time.Time `json:"createdAt"`
}

// Group is a collision between the first-seen record and a later one.
type Group struct {
	Name      string `json:"name"`
	Original  Entry  `json:"original"`
	Duplicate Entry  `json:"duplicate"`
}

// Report is the outcome of one scan pass.
type Report struct {
	Total     int     `json:"total"`
	Groups    []Group `json:"duplicates"`
	Truncated bool    `json:"truncated"`
}

// Detect scans records in order and reports every name collision.
// Records with an empty normalized name are skipped.
func Detect(records []models.PersonRecord) Report {
	firstSeen := make(map[string]models.PersonRecord, len(records))
	groups := []Group{}

	for _, rec := range records {
		name := rec.NormalizedName()
		if name == "" {
			continue
		}

		original, ok := firstSeen[name]
		if !ok {
			firstSeen[name] = rec
			continue
		}

		groups = append(groups, Group{
			Name:      name,
			Original:  entryOf(original),
			Duplicate: entryOf(rec),
		})
	}

	return Report{Total: len(records), Groups: groups}
}

func entryOf(rec models.PersonRecord) Entry {
	return Entry{
		ID:        rec.ID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		CreatedAt: rec.CreatedAt,
	}
}
