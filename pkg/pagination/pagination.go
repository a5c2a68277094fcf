package pagination

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"

	"github.com/chillyai/enhancer/pkg/query"
)

// SortFields accepts either "title,-updated_at" or a JSON array of
// query.SortField.
type SortFields []query.SortField

func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = query.ParseSortFields(str)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest asks for one page, optionally filtered by a search term.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Search   *string    `json:"search,omitempty"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize clamps PageSize into [1, cfg.MaxPageSize] and Page into
// [1, MaxPage(cfg)], so the row offset of any page fits in an int.
func (r *PageRequest) Normalize(cfg Config) {
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)
	r.Page = min(max(r.Page, 1), MaxPage(cfg))
}

// MaxPage is the largest page number whose offset cannot overflow.
func MaxPage(cfg Config) int {
	if cfg.MaxPageSize < 1 {
		return math.MaxInt
	}
	return math.MaxInt / cfg.MaxPageSize
}

// PageRequestFromQuery reads page, page_size, search and sort from values
// and normalizes the result.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	req := PageRequest{
		Sort: query.ParseSortFields(values.Get("sort")),
	}
	req.Page, _ = strconv.Atoi(values.Get("page"))
	req.PageSize, _ = strconv.Atoi(values.Get("page_size"))
	if s := values.Get("search"); s != "" {
		req.Search = &s
	}

	req.Normalize(cfg)
	return req
}

// PageResult is one page of T plus totals.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult computes TotalPages (at least 1) and never returns a nil
// Data slice.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
