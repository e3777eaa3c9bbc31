package cardgen

import (
	"regexp"
	"strings"

	"github.com/ksuda/kioku/internal/card"
)

// ocrReplacements fixes formula text that OCR or the LLM renders in
// plain ASCII. Order matters: longer formulas are listed before their
// substrings so that CO2 is rewritten before the bare O2 rule fires.
var ocrReplacements = []struct{ old, new string }{
	{"H2SO4", "H₂SO₄"},
	{"Ca(OH)2", "Ca(OH)₂"},
	{"Al2O3", "Al₂O₃"},
	{"Fe2O3", "Fe₂O₃"},
	{"CaCO3", "CaCO₃"},
	{"HNO3", "HNO₃"},
	{"C2H4", "C₂H₄"},
	{"C6H6", "C₆H₆"},
	{"SO42-", "SO₄²⁻"},
	{"NO3-", "NO₃⁻"},
	{"H20", "H₂O"},
	{"H2O", "H₂O"},
	{"C02", "CO₂"},
	{"CO2", "CO₂"},
	{"NH3", "NH₃"},
	{"CH4", "CH₄"},
	{"NaCi", "NaCl"},
	{"N2", "N₂"},
	{"O2", "O₂"},
	{"02", "O₂"},
	{"OH-", "OH⁻"},
	{"Na+", "Na⁺"},
	{"Cl-", "Cl⁻"},
	{"H+", "H⁺"},
	{"℃", "°C"},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText normalizes formula notation and collapses runs of whitespace.
func CleanText(text string) string {
	if text == "" {
		return text
	}
	for _, r := range ocrReplacements {
		text = strings.ReplaceAll(text, r.old, r.new)
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

const maxTags = 5

// Cleanse normalizes one card in place: question and answer text,
// tag text, and the tag count cap.
func Cleanse(c *card.Card) {
	c.Question = CleanText(c.Question)
	c.Answer = CleanText(c.Answer)

	tags := c.Tags[:0]
	for _, t := range c.Tags {
		if cleaned := CleanText(t); cleaned != "" {
			tags = append(tags, cleaned)
		}
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	c.Tags = tags
}
