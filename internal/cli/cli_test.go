package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/pacing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-2500, "-2,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "1 coin", FormatCoins(1))
	assert.Equal(t, "10,000 coins", FormatCoins(10000))
	assert.Equal(t, "+15", FormatEarned(15))
	assert.Equal(t, "+0", FormatEarned(0))
}

func TestFormatRanges(t *testing.T) {
	got := FormatRanges([]pacing.Range{
		{Book: "Genesis", Start: 49, End: 50},
		{Book: "Exodus", Start: 1, End: 1},
	})
	assert.Equal(t, "Genesis 49-50, Exodus 1", got)
	assert.Equal(t, "", FormatRanges(nil))
	assert.Equal(t, "12.3%", FormatPercent(12.34))
	assert.Equal(t, "3 chapters", FormatChapters(3))
}

func TestItemStatus(t *testing.T) {
	item := model.ShopItem{ID: 1, Name: "New book", Cost: 300}
	assert.Equal(t, "Need 260 more", ItemStatus(item, 40))
	assert.Equal(t, "Can afford!", ItemStatus(item, 300))
	item.Purchased = true
	assert.Equal(t, "Purchased", ItemStatus(item, 0))
}

func TestRenderTableAlignsRows(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Item", "Cost"},
		Rows:    [][]string{{"Coffee treat", "50"}, {"New laptop", "10,000"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	for _, l := range lines[1:] {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(l))
	}
	assert.Contains(t, out, "Coffee treat")
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderProgressBar(t *testing.T) {
	assert.Contains(t, RenderProgressBar(3, 1189, 20), "3/1,189")
	assert.Empty(t, RenderProgressBar(1, 0, 20))
}

func TestDomainError(t *testing.T) {
	assert.True(t, DomainError(fmt.Errorf("buying x: %w", model.ErrInsufficientFunds)))
	assert.True(t, DomainError(fmt.Errorf("item 3: %w", model.ErrNotFound)))
	assert.False(t, DomainError(errors.New("disk full")))
}
