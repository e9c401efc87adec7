package reconcile

import (
	"regexp"
	"strings"
)

// Banks pack several SEPA subfields into the reference. A subfield
// starts with a four letter tag and a plus sign; subfields appear in
// this fixed order, each at most once, separated by single spaces.
var sepaTags = []string{"EREF", "KREF", "MREF", "CRED", "DEBT", "SVWZ", "ABWA", "ABWE"}

// CleanupReference extracts the SEPA subfields from a reference and
// rejoins them with single spaces, stripping the fixed-width padding
// artifact from each. References that are not fully composed of tagged
// subfields are returned unchanged.
func CleanupReference(reference string) string {
	fields, ok := splitSEPAFields(reference, 0)
	if !ok {
		return reference
	}

	for i, f := range fields {
		fields[i] = stripStatementPadding(f)
	}

	return strings.Join(fields, " ")
}

// splitSEPAFields splits a string into tagged subfields, the first tag
// having an index of at least minTag. The earliest boundary that lets
// the remainder parse wins; if none does, the remainder is one field.
func splitSEPAFields(s string, minTag int) ([]string, bool) {
	tag := leadingTag(s)
	if tag < minTag {
		return nil, false
	}

	for i := 0; i < len(s)-1; i++ {
		if s[i] != ' ' {
			continue
		}

		rest, ok := splitSEPAFields(s[i+1:], tag+1)
		if ok {
			return append([]string{s[:i]}, rest...), true
		}
	}

	return []string{s}, true
}

// leadingTag returns the index of the tag the string starts with, or -1.
func leadingTag(s string) int {
	for i, tag := range sepaTags {
		if strings.HasPrefix(s, tag+"+") {
			return i
		}
	}
	return -1
}

// stripStatementPadding removes every 28th character if it is a space.
// Statement lines are wrapped at 27 characters and rejoined with a
// padding space by some export formats.
func stripStatementPadding(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i, r := range []rune(s) {
		if i%28 == 27 && r == ' ' {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Regulatory notice some banks append to international transfers. Pure
// noise for matching purposes.
const awvNotice = "AWV-MELDEPFLICHT BEACHTENHOTLINE BUNDESBANK.(0800) 1234-111"

var userRefPattern = regexp.MustCompile(`\d{4,6}[-/?:,+.]?\d{1,2}`)

// MatchUserReference scans a bank reference for an encoded user id and
// validates every candidate through the check-digit codec. It returns
// the first user id that checks out.
func MatchUserReference(reference string, check func(string) (int64, bool)) (int64, bool) {
	reference = strings.TrimSpace(strings.ReplaceAll(reference, awvNotice, ""))

	candidates := userRefPattern.FindAllString(strings.ReplaceAll(reference, " ", ""), -1)
	for _, candidate := range candidates {
		uid := normalizeUserRef(candidate)
		if id, ok := check(uid); ok {
			return id, true
		}
	}

	return 0, false
}

// normalizeUserRef rewrites a digit group into the canonical NNNN-CC
// shape: any separator becomes a dash, a missing separator is assumed
// to precede a two digit check code.
func normalizeUserRef(s string) string {
	for _, sep := range []string{"/", "?", ":", ",", "+", "."} {
		s = strings.ReplaceAll(s, sep, "-")
	}

	if len(s) >= 3 && s[len(s)-2] != '-' && s[len(s)-3] != '-' {
		s = s[:len(s)-2] + "-" + s[len(s)-2:]
	}

	return s
}
