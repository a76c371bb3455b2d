// Package classify tags article text with sector labels using fixed keyword
// lists. It is a known heuristic with no accuracy guarantee; the Keyword
// classifier sits behind feed.Classifier so a better strategy can replace it.
package classify

import "strings"

// Sector is a coarse industry/threat label for an article.
type Sector string

const (
	Finance    Sector = "Finance"
	Healthcare Sector = "Healthcare"
	Energy     Sector = "Energy"
	Government Sector = "Government"
	Technology Sector = "Technology"
	Ransomware Sector = "Ransomware"
	DataBreach Sector = "Data Breach"
)

// AllSectors returns the labels in canonical order.
func AllSectors() []Sector {
	return []Sector{Finance, Healthcare, Energy, Government, Technology, Ransomware, DataBreach}
}

var sectorKeywords = map[Sector][]string{
	Finance: {
		"bank", "banking", "fintech", "payment", "financial", "insurance",
		"trading", "cryptocurrency", "crypto exchange", "swift",
	},
	Healthcare: {
		"hospital", "healthcare", "medical", "patient", "pharma", "clinic",
		"health record", "hipaa",
	},
	Energy: {
		"energy", "power grid", "utility", "pipeline", "oil", "gas",
		"nuclear", "scada", "industrial control",
	},
	Government: {
		"government", "federal", "ministry", "municipal", "military",
		"election", "defense", "nation-state", "espionage",
	},
	Technology: {
		"software", "cloud", "saas", "open source", "microsoft", "google",
		"apple", "linux", "kubernetes", "api",
	},
	Ransomware: {
		"ransomware", "ransom", "lockbit", "extortion", "encryptor",
		"double extortion",
	},
	DataBreach: {
		"data breach", "breach", "leaked", "data leak", "exposed database",
		"stolen records", "exfiltration",
	},
}

// Keyword is the substring-matching classifier.
type Keyword struct{}

// Classify returns every sector whose keyword list matches the text, in
// canonical order. Multi-word keywords match as substrings; single words
// match whole tokens.
func (Keyword) Classify(text string) []string {
	lower := strings.ToLower(text)
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(lower) {
		tokens[strings.Trim(w, ".,;:!?\"'()[]")] = true
	}

	var labels []string
	for _, sector := range AllSectors() {
		for _, kw := range sectorKeywords[sector] {
			if strings.Contains(kw, " ") {
				if strings.Contains(lower, kw) {
					labels = append(labels, string(sector))
					break
				}
			} else if tokens[kw] {
				labels = append(labels, string(sector))
				break
			}
		}
	}
	return labels
}
