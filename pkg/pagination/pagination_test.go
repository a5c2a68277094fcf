package pagination_test

import (
	"encoding/json"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillyai/enhancer/pkg/pagination"
	"github.com/chillyai/enhancer/pkg/query"
)

func ptr(s string) *string { return &s }

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		require.NoError(t, cfg.Finalize(nil))
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "50")
		t.Setenv("TEST_MAX_PAGE", "200")

		cfg := pagination.Config{}
		require.NoError(t, cfg.Finalize(&pagination.ConfigEnv{
			DefaultPageSize: "TEST_PAGE_SIZE",
			MaxPageSize:     "TEST_MAX_PAGE",
		}))
		assert.Equal(t, 50, cfg.DefaultPageSize)
		assert.Equal(t, 200, cfg.MaxPageSize)
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 500, MaxPageSize: 100}
		assert.ErrorContains(t, cfg.Finalize(nil), "cannot exceed")
	})
}

func TestConfigMerge(t *testing.T) {
	cfg := defaultConfig()
	cfg.Merge(&pagination.Config{MaxPageSize: 50})
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 50, cfg.MaxPageSize)
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   pagination.PageRequest
	}{
		{
			name:   "empty uses defaults",
			values: url.Values{},
			want:   pagination.PageRequest{Page: 1, PageSize: 20},
		},
		{
			name:   "page size clamped",
			values: url.Values{"page": {"2"}, "page_size": {"1000"}},
			want:   pagination.PageRequest{Page: 2, PageSize: 100},
		},
		{
			name:   "invalid numbers normalized",
			values: url.Values{"page": {"-3"}, "page_size": {"abc"}},
			want:   pagination.PageRequest{Page: 1, PageSize: 20},
		},
		{
			name:   "huge page clamped",
			values: url.Values{"page": {"9223372036854775807"}, "page_size": {"50"}},
			want:   pagination.PageRequest{Page: math.MaxInt / 100, PageSize: 50},
		},
		{
			name:   "search and sort",
			values: url.Values{"search": {"poem"}, "sort": {"-updated_at"}},
			want: pagination.PageRequest{
				Page:     1,
				PageSize: 20,
				Search:   ptr("poem"),
				Sort:     pagination.SortFields{{Field: "updated_at", Descending: true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.PageRequestFromQuery(tt.values, defaultConfig()))
		})
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	var fromString pagination.PageRequest
	require.NoError(t, json.Unmarshal([]byte(`{"sort":"title,-updated_at"}`), &fromString))

	var fromArray pagination.PageRequest
	require.NoError(t, json.Unmarshal(
		[]byte(`{"sort":[{"field":"title"},{"field":"updated_at","descending":true}]}`),
		&fromArray,
	))

	want := pagination.SortFields{
		query.SortField{Field: "title"},
		query.SortField{Field: "updated_at", Descending: true},
	}
	assert.Equal(t, want, fromString.Sort)
	assert.Equal(t, want, fromArray.Sort)
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty", 0, 20, 1},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult[string](nil, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.wantPages, result.TotalPages)
			assert.NotNil(t, result.Data)
		})
	}
}
