package ersdoc

import (
	"regexp"
	"strings"
)

// ersmSectionPattern matches the ERSM section-numbering scheme in manual
// URLs, e.g. /ersm110000 or /ersm20020.
var ersmSectionPattern = regexp.MustCompile(`/ersm(\d+)`)

// SectionFromURL derives a section identifier from a manual page URL.
// The specific ERSM numeric pattern wins over the legacy category
// mappings, which in turn win over the generic path-segment fallback.
func SectionFromURL(rawURL string) string {
	lower := strings.ToLower(rawURL)

	if m := ersmSectionPattern.FindStringSubmatch(lower); m != nil {
		return "ersm" + m[1]
	}

	// Legacy category mappings. Largely shadowed by the numeric pattern;
	// they only fire for URLs that mention a section code outside a path
	// segment boundary.
	switch {
	case strings.Contains(lower, "ersm110000") || strings.Contains(lower, "ersm11"):
		return "ersm110000_general_principles"
	case strings.Contains(lower, "ersm20000") || strings.Contains(lower, "ersm2"):
		return "ersm20000_share_schemes"
	case strings.Contains(lower, "ersm30000") || strings.Contains(lower, "ersm3"):
		return "ersm30000_tax_implications"
	case strings.Contains(lower, "capital-gains"):
		return "capital_gains_manual"
	case strings.Contains(lower, "income-tax"):
		return "income_tax_manual"
	case strings.Contains(lower, "share-schemes"):
		return "share_schemes"
	}

	// Generic fallback: join the last two non-empty path segments.
	parts := strings.Split(rawURL, "/")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}

// titlePrefixes are boilerplate prefixes stripped from candidate title lines.
var titlePrefixes = []string{
	"ERSM",
	"Employment-related securities",
	"HMRC internal manual",
}

const (
	// titleScanLines is how deep into the extracted text a title is looked for.
	titleScanLines = 10
	// titleMinLen excludes lines that are likely navigation noise.
	titleMinLen = 10
	// titleMaxLen excludes lines that are likely whole paragraphs.
	titleMaxLen = 200
)

// UnknownTitle is the sentinel used when no line of a document qualifies
// as its title.
const UnknownTitle = "Unknown"

// TitleFromContent picks a page title from extracted text: the first line
// within the first ten that is long enough to be meaningful and short
// enough to not be a paragraph, with known boilerplate prefixes removed.
func TitleFromContent(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= titleMinLen || len(line) >= titleMaxLen {
			continue
		}
		for _, prefix := range titlePrefixes {
			if strings.HasPrefix(line, prefix) {
				line = strings.Trim(strings.TrimPrefix(line, prefix), " -:")
			}
		}
		if line != "" {
			return line
		}
	}
	return UnknownTitle
}
