package formatting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillyai/enhancer/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"512", 512},
		{"64KB", 64 << 10},
		{"1 mb", 1 << 20},
		{"1.5MB", 1536 << 10},
		{" 2GB ", 2 << 30},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBytesErrors(t *testing.T) {
	for _, input := range []string{"", "MB", "-1KB", "10 XB", "1.2.3MB"} {
		t.Run(input, func(t *testing.T) {
			_, err := formatting.ParseBytes(input)
			assert.Error(t, err)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{1023, 0, "1023 B"},
		{1 << 20, 1, "1.0 MB"},
		{1536, 2, "1.50 KB"},
		{1 << 10, -1, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatting.FormatBytes(tt.n, tt.precision))
		})
	}
}
