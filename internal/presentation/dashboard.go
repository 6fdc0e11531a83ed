// Package presentation derives display values from roast metrics for the web
// page and the terminal.
package presentation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/resume-roaster/internal/types"
)

// Tile is one cell of the metrics dashboard.
type Tile struct {
	Label string
	Value string
	Color string
}

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v) }
func decimal(v float64) string { return fmt.Sprintf("%.1f", v) }
func count(c types.Count) string {
	return strconv.Itoa(int(c))
}

// Dashboard returns the ten metric tiles in display order.
func Dashboard(m *types.ResumeMetrics) []Tile {
	return []Tile{
		{Label: "Buzzword Bingo", Value: count(m.BuzzwordBingo), Color: "yellow"},
		{Label: "Fluff Factor", Value: percent(m.FluffFactor), Color: "pink"},
		{Label: "Passive Voice Sentences", Value: count(m.PassivePatty), Color: "purple"},
		{Label: "Superlative Slam", Value: count(m.SuperlativeSlam), Color: "blue"},
		{Label: "Jargon Jolt (/100 words)", Value: decimal(m.JargonJolt), Color: "indigo"},
		{Label: "Number Mentions", Value: count(m.NumberCruncher), Color: "green"},
		{Label: "Action Verb Lines", Value: percent(m.VerbVibes), Color: "teal"},
		{Label: "Long Sentences (>20 words)", Value: percent(m.SentenceSauna), Color: "orange"},
		{Label: "Absolute Terms", Value: count(m.HyperboleHunter), Color: "red"},
		{Label: "Avg Punctuation / Line", Value: decimal(m.PunctuationParty), Color: "gray"},
	}
}

// AvatarBaseURL renders a robot avatar seeded by the roast character.
const AvatarBaseURL = "https://api.dicebear.com/9.x/bottts/svg"

// Card is the shareable roast summary. ShareURL is the mailto fallback for
// browsers without navigator.share.
type Card struct {
	Character   string
	Name        string
	Score       int
	ScoreText   string
	TopBuzzword string
	AvatarURL   string
	ShareTitle  string
	ShareText   string
	ShareURL    string
}

// ShareTitle is the title offered to the browser share sheet.
const ShareTitle = "My Roast"

// NewCard builds the summary card for m.
func NewCard(m *types.ResumeMetrics) Card {
	text := ShareText(m)
	return Card{
		Character:   m.RoastCharacter,
		Name:        m.Name,
		Score:       int(m.RoastScore),
		ScoreText:   fmt.Sprintf("%d%%", int(m.RoastScore)),
		TopBuzzword: m.TopBuzzword,
		AvatarURL:   AvatarURL(m.RoastCharacter),
		ShareTitle:  ShareTitle,
		ShareText:   text,
		ShareURL:    ShareURL(ShareTitle, text),
	}
}

// ShareText is the message shared for a roast.
func ShareText(m *types.ResumeMetrics) string {
	return fmt.Sprintf("I got roasted as %s! Cringe Score: %d%%", m.RoastCharacter, int(m.RoastScore))
}

// ShareURL returns a mailto link carrying subject and body. Spaces are
// encoded as %20 since mail clients do not decode "+".
func ShareURL(subject, body string) string {
	escape := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(body)
}

// AvatarURL returns the avatar image URL for a roast character.
func AvatarURL(character string) string {
	return AvatarBaseURL + "?seed=" + url.QueryEscape(character)
}
