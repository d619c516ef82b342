package signal

// CandidateQuery is the single compound catalog query the four signal
// tiers merge into. A place qualifies when it matches any tier; because
// the tiers are one OR'd filter rather than four result lists, a place
// matching several tiers appears once. ExcludeOwnerID is always
// intersected so a user never sees their own places, and SearchQuery,
// when set, further narrows the result by name/description/location.
//
// Tiers gate inclusion only; the catalog orders results by created_at
// descending regardless of which tier matched.
type CandidateQuery struct {
	ExcludeOwnerID      int64
	SavedPlaceIDs       []int64
	SearchTerms         []string
	TagAffinity         []string
	FrequentlyViewedIDs []int64
	SearchQuery         string
	Skip                int
	Limit               int
}

// BuildQuery assembles the candidate query for one request.
func BuildQuery(userID int64, sig Signals, searchQuery string, skip, limit int) CandidateQuery {
	return CandidateQuery{
		ExcludeOwnerID:      userID,
		SavedPlaceIDs:       sig.SavedPlaceIDs,
		SearchTerms:         sig.SearchTerms,
		TagAffinity:         sig.TagAffinity,
		FrequentlyViewedIDs: sig.FrequentlyViewedIDs,
		SearchQuery:         searchQuery,
		Skip:                skip,
		Limit:               limit,
	}
}

// HasSignals reports whether any tier can match at all. A query with no
// signals matches nothing and callers should go straight to fallback.
func (q CandidateQuery) HasSignals() bool {
	return len(q.SavedPlaceIDs) > 0 ||
		len(q.SearchTerms) > 0 ||
		len(q.TagAffinity) > 0 ||
		len(q.FrequentlyViewedIDs) > 0
}
