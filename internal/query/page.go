package query

const (
	// DefaultPageSize is used when the caller supplies no page size or a
	// non-positive one.
	DefaultPageSize = 20
	// MaxPageSize caps the per-page record count.
	MaxPageSize = 200
)

// Page is a 1-based pagination request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page to sane values: page numbers below 1 become 1,
// sizes at or below 0 become DefaultPageSize, and sizes above MaxPageSize
// are capped. Page numbers past the last page are left alone — they
// produce an empty item slice, not an error.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// LimitOffset returns the LIMIT/OFFSET values for the normalized page.
func (p Page) LimitOffset() (limit, offset int) {
	p = p.Normalize()
	return p.Size, (p.Number - 1) * p.Size
}

// TotalPages computes the page count for a given total record count.
func (p Page) TotalPages(total int64) int {
	p = p.Normalize()
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
