package pagination

import (
	"gorm.io/gorm"
)

const (
	// DefaultLimit is the page window when the client does not ask for one.
	DefaultLimit = 50
	// MaxLimit bounds every page window.
	MaxLimit = 1000
)

// PageRequest holds offset pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=1000"`
}

// Defaults fills in default values when page or pageSize are not provided.
// The page size falls back to the request's limit.
func (p *PageRequest) Defaults(limit int) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = ClampLimit(limit)
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// IsSet reports whether the client asked for offset pagination at all.
func (p *PageRequest) IsSet() bool {
	return p.Page != 0 || p.PageSize != 0
}

// ClampLimit bounds a requested window to [1, MaxLimit]; zero means DefaultLimit.
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 1:
		return 1
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
