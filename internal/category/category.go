package category

import "strings"

// Category is one of the fixed banking service categories a query routes to.
type Category string

const (
	AccountOpening     Category = "Account Opening"
	BillingIssue       Category = "Billing Issue"
	AccountAccess      Category = "Account Access"
	TransactionInquiry Category = "Transaction Inquiry"
	CardServices       Category = "Card Services"
	AccountStatement   Category = "Account Statement"
	LoanInquiry        Category = "Loan Inquiry"
	GeneralInformation Category = "General Information"
)

// Uncategorized is the fallback label when a completion matches no known
// category. It is never offered to the classifier.
const Uncategorized Category = "Uncategorized"

// All returns the categories offered to the classifier, in canonical order.
func All() []Category {
	return []Category{
		AccountOpening,
		BillingIssue,
		AccountAccess,
		TransactionInquiry,
		CardServices,
		AccountStatement,
		LoanInquiry,
		GeneralInformation,
	}
}

// List returns the canonical comma-separated list injected into prompts.
func List() string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Parse extracts a single category from completion text. It takes the first
// non-empty line, strips label echoes, list markers, quoting, and a trailing
// period, then matches case-insensitively against the known set. On no match
// it returns (Uncategorized, false).
func Parse(text string) (Category, bool) {
	return match(normalize(firstLine(text)))
}

// ParseList extracts every recognized category from comma- or newline-
// separated completion text. Unknown names are dropped; duplicates keep
// their first position.
func ParseList(text string) []Category {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	var out []Category
	seen := make(map[Category]bool)
	for _, p := range parts {
		c, ok := match(normalize(p))
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func match(name string) (Category, bool) {
	if name == "" {
		return Uncategorized, false
	}
	for _, c := range All() {
		if strings.EqualFold(name, string(c)) {
			return c, true
		}
	}
	return Uncategorized, false
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// normalize reduces one completion token to a bare category name: list
// markers, "Final Category:"-style echoes, markdown emphasis, surrounding
// quotes, and a trailing period are all stripped, inner whitespace collapsed.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*• \t")

	// Numbered list marker ("1." or "1)").
	if i := strings.IndexAny(s, ".)"); i > 0 && isDigits(s[:i]) {
		s = s[i+1:]
	}

	for _, label := range []string{"final category:", "category:"} {
		if len(s) >= len(label) && strings.EqualFold(s[:len(label)], label) {
			s = s[len(label):]
		}
	}

	s = strings.Trim(s, "*`\"' \t")
	s = strings.TrimSuffix(s, ".")
	return strings.Join(strings.Fields(s), " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
