package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any list call can request.
	MaxLimit = 100
)

// Params holds page-number pagination inputs for list endpoints.
type Params struct {
	Page  int
	Limit int
}

// Meta mirrors the pagination metadata returned alongside paginated lists.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage treats any non-positive page as the first page.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// PageCount computes the total page count for a result set.
func PageCount(total, limit int) int {
	limit = NormalizeLimit(limit)
	if total <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// MetaFor builds the metadata block for a full result set sliced by params.
func MetaFor(total int, params Params) Meta {
	limit := NormalizeLimit(params.Limit)
	return Meta{
		Total:      total,
		Page:       NormalizePage(params.Page),
		Limit:      limit,
		TotalPages: PageCount(total, limit),
	}
}
