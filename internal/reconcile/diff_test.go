package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodes(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []Opcode
	}{
		{
			name: "identical",
			a:    []string{"x", "y", "z"},
			b:    []string{"x", "y", "z"},
			want: []Opcode{{Tag: OpEqual, I1: 0, I2: 3, J1: 0, J2: 3}},
		},
		{
			name: "append only",
			a:    []string{"x"},
			b:    []string{"x", "y", "z"},
			want: []Opcode{
				{Tag: OpEqual, I1: 0, I2: 1, J1: 0, J2: 1},
				{Tag: OpInsert, I1: 1, I2: 1, J1: 1, J2: 3},
			},
		},
		{
			name: "stored only",
			a:    []string{"x", "y", "z"},
			b:    []string{"x", "z"},
			want: []Opcode{
				{Tag: OpEqual, I1: 0, I2: 1, J1: 0, J2: 1},
				{Tag: OpDelete, I1: 1, I2: 2, J1: 1, J2: 1},
				{Tag: OpEqual, I1: 2, I2: 3, J1: 1, J2: 2},
			},
		},
		{
			name: "replace",
			a:    []string{"x", "y", "z"},
			b:    []string{"x", "q", "z"},
			want: []Opcode{
				{Tag: OpEqual, I1: 0, I2: 1, J1: 0, J2: 1},
				{Tag: OpReplace, I1: 1, I2: 2, J1: 1, J2: 2},
				{Tag: OpEqual, I1: 2, I2: 3, J1: 2, J2: 3},
			},
		},
		{
			name: "disjoint",
			a:    []string{"x"},
			b:    []string{"y"},
			want: []Opcode{{Tag: OpReplace, I1: 0, I2: 1, J1: 0, J2: 1}},
		},
		{
			name: "empty stored side",
			a:    nil,
			b:    []string{"x", "y"},
			want: []Opcode{{Tag: OpInsert, I1: 0, I2: 0, J1: 0, J2: 2}},
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Opcodes(tt.a, tt.b))
		})
	}
}
