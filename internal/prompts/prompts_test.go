package prompts_test

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chillyai/enhancer/internal/prompts"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "..."},
		{"strips markdown markers", "# Title\n**bold** `code`", " Title\nbold code..."},
		{"placeholder", prompts.DefaultContent, " New Prompt\n\nStart writing your prompt here......"},
		{"truncates to 150", strings.Repeat("a", 200), strings.Repeat("a", 150) + "..."},
		{"counts characters not bytes", strings.Repeat("é", 151), strings.Repeat("é", 150) + "..."},
		{"strips before truncating", strings.Repeat("#", 10) + strings.Repeat("b", 150), strings.Repeat("b", 150) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prompts.Preview(tt.content))
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	f := prompts.FiltersFromQuery(url.Values{"title": {"poem"}})
	if assert.NotNil(t, f.Title) {
		assert.Equal(t, "poem", *f.Title)
	}

	assert.Nil(t, prompts.FiltersFromQuery(url.Values{}).Title)
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{prompts.ErrNotFound, http.StatusNotFound},
		{prompts.ErrDuplicate, http.StatusConflict},
		{prompts.ErrValidation, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, prompts.MapHTTPStatus(tt.err))
		})
	}
}
