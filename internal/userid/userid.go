// Package userid implements the check-digit protected external user
// identifier printed on datasheets and expected in bank transfer
// references, e.g. "1234-56".
//
// Two code types exist: type 1 appends a single digit-sum mod 10 digit,
// type 2 a two-digit IBAN-style mod-97 code. Type 2 is what new
// datasheets carry; type 1 is still accepted on incoming references.
package userid

import (
	"fmt"
	"regexp"
	"strconv"
)

// digitSum adds up the decimal digits of n.
func digitSum(n int64) int64 {
	if n < 0 {
		n = -n
	}
	var sum int64
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// Type1Code is the digit-sum mod 10 check digit. It does not catch
// digit transposition errors.
func Type1Code(n int64) int64 {
	return digitSum(n) % 10
}

// Type2Code expands a number on the right so that its mod-97 is 1,
// following the IBAN check digit scheme.
func Type2Code(n int64) int64 {
	return 98 - (n*100)%97
}

// ValidType2 reports whether code is the type-2 check code for n.
func ValidType2(n, code int64) bool {
	return (n*100+code)%97 == 1
}

// EncodeType1 renders a user id with its type-1 check digit.
func EncodeType1(userID int64) string {
	return fmt.Sprintf("%04d-%d", userID, Type1Code(userID))
}

// EncodeType2 renders a user id with its type-2 check code.
func EncodeType2(userID int64) string {
	return fmt.Sprintf("%04d-%02d", userID, Type2Code(userID))
}

var (
	type1Pattern = regexp.MustCompile(`^(\d{4,})-(\d)$`)
	type2Pattern = regexp.MustCompile(`^(\d{4,})-(\d{2})$`)
)

// DecodeType1 splits a type-1 encoded id into number and code strings.
func DecodeType1(s string) (id, code string, ok bool) {
	m := type1Pattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// DecodeType2 splits a type-2 encoded id into number and code strings.
func DecodeType2(s string) (id, code string, ok bool) {
	m := type2Pattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Check reports whether s is a valid encoded user id of either type
// and returns the decoded numeric id.
func Check(s string) (int64, bool) {
	var id, code string
	if d1, c1, ok := DecodeType1(s); ok {
		id, code = d1, c1
	} else if d2, c2, ok := DecodeType2(s); ok {
		id, code = d2, c2
	} else {
		return 0, false
	}

	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}

	var encoded string
	if len(code) == 2 {
		encoded = EncodeType2(n)
	} else {
		encoded = EncodeType1(n)
	}
	if s != encoded {
		return 0, false
	}
	return n, true
}
