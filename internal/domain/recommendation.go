package domain

// RecommendationPage is one page of recommended places. HasNext reports
// whether another page exists under the same filter; in fallback mode it
// is always false.
type RecommendationPage struct {
	Places   []Place `json:"places"`
	HasNext  bool    `json:"has_next"`
	Fallback bool    `json:"fallback"`

	// CacheHit is set on pages served from the cache. It is excluded
	// from the cached payload itself so a freshly decoded entry always
	// starts false.
	CacheHit bool `json:"-"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	Count       int    `json:"count"`
}

// PlacePage is a plain paginated listing, used by the catalog listing and
// search endpoints.
type PlacePage struct {
	Places  []Place `json:"places"`
	HasNext bool    `json:"has_next"`
}

type BatchUserResult struct {
	UserID int64   `json:"user_id"`
	Places []Place `json:"places,omitempty"`
	Status string  `json:"status"`
	Error  string  `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
}
