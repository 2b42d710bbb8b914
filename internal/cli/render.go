// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

const (
	cardsPerRow = 3
	cardWidth   = 30
)

// NoPosterText stands in for a missing poster.
const NoPosterText = "Poster Not Available"

// Theme holds the color scheme for recommendation cards.
type Theme struct {
	Header  lipgloss.Color
	Title   lipgloss.Color
	Score   lipgloss.Color
	Poster  lipgloss.Color
	Missing lipgloss.Color
	Border  lipgloss.Color
}

var defaultTheme = Theme{
	Header:  lipgloss.Color("#5FAFD7"), // light blue
	Title:   lipgloss.Color("#FFFFFF"),
	Score:   lipgloss.Color("#00D787"), // green
	Poster:  lipgloss.Color("#6C6C6C"), // dim gray
	Missing: lipgloss.Color("#FF875F"), // orange
	Border:  lipgloss.Color("#3A3A3A"), // dark gray
}

// renderRecommendations lays resp out as a header over rows of cards. The
// renderer is bound to w so color support follows the real output.
func renderRecommendations(w io.Writer, resp *recommend.Response) string {
	r := lipgloss.NewRenderer(w)
	t := defaultTheme

	header := r.NewStyle().Foreground(t.Header).Bold(true).
		Render(fmt.Sprintf("Movies like %s", resp.Query.Title))

	if len(resp.Items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "No other movies in the catalog.")
	}

	card := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(cardWidth)
	titleStyle := r.NewStyle().Foreground(t.Title).Bold(true)
	scoreStyle := r.NewStyle().Foreground(t.Score)
	posterStyle := r.NewStyle().Foreground(t.Poster)
	missingStyle := r.NewStyle().Foreground(t.Missing).Italic(true)

	cards := make([]string, len(resp.Items))
	for i, item := range resp.Items {
		poster := missingStyle.Render(NoPosterText)
		if item.PosterURL != "" {
			poster = posterStyle.Render(item.PosterURL)
		}
		cards[i] = card.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(fmt.Sprintf("%d. %s", i+1, item.Title)),
			scoreStyle.Render(fmt.Sprintf("similarity %.3f", item.Score)),
			poster,
		))
	}

	rows := []string{header}
	for start := 0; start < len(cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
