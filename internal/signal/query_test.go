package signal

import "testing"

func TestBuildQuery(t *testing.T) {
	sig := Signals{
		SavedPlaceIDs: []int64{1, 2},
		SearchTerms:   []string{"sushi"},
	}

	q := BuildQuery(42, sig, "tokyo", 10, 5)

	if q.ExcludeOwnerID != 42 {
		t.Errorf("expected owner exclusion for user 42, got %d", q.ExcludeOwnerID)
	}
	if q.Skip != 10 || q.Limit != 5 {
		t.Errorf("expected skip=10 limit=5, got skip=%d limit=%d", q.Skip, q.Limit)
	}
	if q.SearchQuery != "tokyo" {
		t.Errorf("expected search query preserved, got %q", q.SearchQuery)
	}
	if !q.HasSignals() {
		t.Error("query with saved places should have signals")
	}
}

func TestHasSignalsEmpty(t *testing.T) {
	q := BuildQuery(1, Signals{}, "", 0, 10)
	if q.HasSignals() {
		t.Error("query built from empty signals should have none")
	}
}

func TestHasSignalsEachTier(t *testing.T) {
	cases := map[string]Signals{
		"saved":    {SavedPlaceIDs: []int64{1}},
		"search":   {SearchTerms: []string{"a"}},
		"tags":     {TagAffinity: []string{"food"}},
		"frequent": {FrequentlyViewedIDs: []int64{9}},
	}
	for name, sig := range cases {
		if !BuildQuery(1, sig, "", 0, 10).HasSignals() {
			t.Errorf("%s tier alone should count as a signal", name)
		}
	}
}
