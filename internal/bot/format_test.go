package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	require.Equal(t, "a &amp; b &lt;i&gt;", escapeHTML("a & b <i>"))
	require.Equal(t, "plain", escapeHTML("plain"))
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{percent: 0, want: "░░░░░░░░░░"},
		{percent: 45, want: "████░░░░░░"},
		{percent: 100, want: "██████████"},
		{percent: 250, want: "██████████"},
		{percent: -10, want: "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, progressBar(tt.percent), "percent %v", tt.percent)
	}
}

func TestSplitMessage(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		require.Equal(t, []string{"hello"}, splitMessage("hello", 10))
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		require.Empty(t, splitMessage("", 10))
	})

	t.Run("prefers line breaks", func(t *testing.T) {
		chunks := splitMessage("aaaa\nbbbb\ncccc", 10)
		require.Equal(t, []string{"aaaa\nbbbb", "cccc"}, chunks)
	})

	t.Run("hard cuts long lines", func(t *testing.T) {
		chunks := splitMessage(strings.Repeat("x", 25), 10)
		require.Len(t, chunks, 3)
		require.Equal(t, strings.Repeat("x", 10), chunks[0])
		require.Equal(t, strings.Repeat("x", 5), chunks[2])
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		chunks := splitMessage(strings.Repeat("ş", 12), 10)
		require.Len(t, chunks, 2)
		require.Equal(t, strings.Repeat("ş", 10), chunks[0])
	})
}

func TestMergeDatesDesc(t *testing.T) {
	got := mergeDatesDesc(
		[]string{"14.03.2026", "10.03.2026", "bad"},
		[]string{"12.03.2026", "10.03.2026"},
		time.UTC,
	)
	require.Equal(t, []string{"14.03.2026", "12.03.2026", "10.03.2026", "bad"}, got)
}

func TestChangeSuffix(t *testing.T) {
	require.Equal(t, " (+50%)", changeSuffix(decimal.NewFromInt(150), decimal.NewFromInt(100)))
	require.Equal(t, " (-25%)", changeSuffix(decimal.NewFromInt(75), decimal.NewFromInt(100)))
	require.Equal(t, " (0%)", changeSuffix(decimal.NewFromInt(100), decimal.NewFromInt(100)))
	require.Empty(t, changeSuffix(decimal.NewFromInt(100), decimal.Zero))
}

func TestMonthLabel(t *testing.T) {
	require.Equal(t, "March 2026", monthLabel(2026, time.March))
}
