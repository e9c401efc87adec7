package reconcile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mhellwig/dormnet/internal/reconcile"
	"github.com/mhellwig/dormnet/internal/userid"
)

func TestCleanupReference(t *testing.T) {
	// 27 characters of content followed by the padding space at index 27.
	padded := "SVWZ+Beitrag 1234-82 Max Mu" + " " + "stermann"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain reference unchanged",
			in:   "mietzins januar",
			want: "mietzins januar",
		},
		{
			name: "single subfield",
			in:   "SVWZ+Beitrag 1234-82",
			want: "SVWZ+Beitrag 1234-82",
		},
		{
			name: "multiple subfields rejoined",
			in:   "EREF+E-123 MREF+M-9 SVWZ+Beitrag 1234-82",
			want: "EREF+E-123 MREF+M-9 SVWZ+Beitrag 1234-82",
		},
		{
			name: "padding space stripped",
			in:   padded,
			want: "SVWZ+Beitrag 1234-82 Max Mustermann",
		},
		{
			name: "tags out of order not recognized",
			in:   "SVWZ+foo EREF+bar",
			want: "SVWZ+foo EREF+bar",
		},
		{
			name: "leading free text unchanged",
			in:   "Beitrag SVWZ+foo",
			want: "Beitrag SVWZ+foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.CleanupReference(tt.in))
		})
	}
}

// Subfield content after SVWZ+ may itself contain spaces; only a space
// directly before a later tag ends the field.
func TestCleanupReference_ContentWithSpaces(t *testing.T) {
	in := "KREF+NOTPROVIDED SVWZ+Beitrag Max Mustermann ABWA+WG Kasse"
	assert.Equal(t, in, reconcile.CleanupReference(in))
}

func TestMatchUserReference(t *testing.T) {
	// 1234 carries the type-2 check code 82 and the type-1 check digit 0.
	tests := []struct {
		name   string
		in     string
		wantID int64
		wantOK bool
	}{
		{name: "canonical", in: "Beitrag 1234-82 Max", wantID: 1234, wantOK: true},
		{name: "type1", in: "Beitrag 1234-0", wantID: 1234, wantOK: true},
		{name: "slash separator", in: "Beitrag 1234/82", wantID: 1234, wantOK: true},
		{name: "missing separator", in: "Beitrag 123482", wantID: 1234, wantOK: true},
		{name: "spaced digits", in: "Beitrag 12 34-82", wantID: 1234, wantOK: true},
		{name: "wrong check code", in: "Beitrag 1234-83", wantOK: false},
		{name: "no digits", in: "mietzins", wantOK: false},
		{name: "noise constant stripped", in: "1234-82 " + strings.Repeat(" ", 2) + "AWV-MELDEPFLICHT BEACHTENHOTLINE BUNDESBANK.(0800) 1234-111", wantID: 1234, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := reconcile.MatchUserReference(tt.in, userid.Check)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}
