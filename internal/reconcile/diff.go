package reconcile

// Sequence alignment between the stored activity mirror and a freshly
// parsed statement. Elements are compared by an opaque key; the
// resulting opcodes classify every aligned span.

type OpTag int

const (
	OpEqual OpTag = iota
	OpInsert
	OpDelete
	OpReplace
)

// Opcode describes how a[I1:I2] relates to b[J1:J2].
type Opcode struct {
	Tag            OpTag
	I1, I2, J1, J2 int
}

// Opcodes aligns a and b by longest common subsequence and returns the
// spans in order. Equal spans are maximal; a span present only in b is
// an insert, only in a a delete, and a mismatched pair a replace.
func Opcodes(a, b []string) []Opcode {
	n, m := len(a), len(b)

	// lcs[i][j] = length of the LCS of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []Opcode
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			i1, j1 := i, j
			for i < n && j < m && a[i] == b[j] {
				i++
				j++
			}
			ops = append(ops, Opcode{Tag: OpEqual, I1: i1, I2: i, J1: j1, J2: j})
		default:
			i1, j1 := i, j
			for i < n || j < m {
				if i < n && j < m && a[i] == b[j] {
					break
				}
				if i < n && (j >= m || lcs[i+1][j] >= lcs[i][j+1]) {
					i++
				} else {
					j++
				}
			}
			tag := OpReplace
			if i == i1 {
				tag = OpInsert
			} else if j == j1 {
				tag = OpDelete
			}
			ops = append(ops, Opcode{Tag: tag, I1: i1, I2: i, J1: j1, J2: j})
		}
	}

	return ops
}
