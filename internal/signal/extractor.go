// Package signal derives recommendation signals from a bounded window of a
// user's recent interaction history. Everything here is pure aggregation
// over the window; no store access happens in this package.
package signal

import (
	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

const (
	DefaultWindowSize    = 50
	DefaultViewThreshold = 10
)

// Signals holds the four independent candidate sets extracted from one
// window. Each set may be empty; Empty reports whether all four are.
type Signals struct {
	SavedPlaceIDs       []int64
	SearchTerms         []string
	TagAffinity         []string
	FrequentlyViewedIDs []int64
}

func (s Signals) Empty() bool {
	return len(s.SavedPlaceIDs) == 0 &&
		len(s.SearchTerms) == 0 &&
		len(s.TagAffinity) == 0 &&
		len(s.FrequentlyViewedIDs) == 0
}

// Extract computes the four signal sets from a recent-events window.
// Events must be ordered newest-first, as returned by the interaction
// store. viewThreshold is the minimum number of view events for a place
// to count as frequently viewed; values < 1 fall back to the default.
func Extract(events []domain.Interaction, viewThreshold int) Signals {
	if viewThreshold < 1 {
		viewThreshold = DefaultViewThreshold
	}

	// For saves, the newest save/unsave per place decides membership.
	// Walking newest-first, the first verdict seen for a place wins;
	// an unsave with no later save simply decides "not saved".
	saveVerdict := make(map[int64]bool)
	var savedOrder []int64

	viewCounts := make(map[int64]int)
	var viewOrder []int64

	var searchTerms []string

	seenTags := make(map[string]bool)
	var tags []string

	for _, ev := range events {
		switch ev.Action {
		case domain.ActionSave, domain.ActionUnsave:
			if ev.PlaceID == nil {
				continue
			}
			id := *ev.PlaceID
			if _, decided := saveVerdict[id]; !decided {
				saveVerdict[id] = ev.Action == domain.ActionSave
				savedOrder = append(savedOrder, id)
			}
		case domain.ActionView:
			if ev.PlaceID == nil {
				continue
			}
			id := *ev.PlaceID
			if viewCounts[id] == 0 {
				viewOrder = append(viewOrder, id)
			}
			viewCounts[id]++
		case domain.ActionSearch:
			searchTerms = append(searchTerms, ev.SearchTerms...)
		}

		for _, tag := range ev.Tags {
			if tag == "" || seenTags[tag] {
				continue
			}
			seenTags[tag] = true
			tags = append(tags, tag)
		}
	}

	var saved []int64
	for _, id := range savedOrder {
		if saveVerdict[id] {
			saved = append(saved, id)
		}
	}

	var frequent []int64
	for _, id := range viewOrder {
		if viewCounts[id] >= viewThreshold {
			frequent = append(frequent, id)
		}
	}

	return Signals{
		SavedPlaceIDs:       saved,
		SearchTerms:         searchTerms,
		TagAffinity:         tags,
		FrequentlyViewedIDs: frequent,
	}
}
