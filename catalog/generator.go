package catalog

import "fmt"

// Candidate naming space probed in discovery mode: chamber prefixes crossed
// with zero-padded numbers and document extensions.
var (
	candidatePrefixes   = []string{"HR_", "HB_", "S_", "SB_"}
	candidateExtensions = []string{".pdf", ".txt", ".doc", ".docx"}
)

const candidateMaxNumber = 999

// Generator lazily walks the finite candidate filename space in a fixed
// order: prefix, then extension, then number. It performs no I/O, so the
// probe order is testable on its own.
type Generator struct {
	prefix, ext, num int
}

// NewGenerator starts at the first candidate.
func NewGenerator() *Generator {
	return &Generator{num: 1}
}

// Next returns the next candidate filename, or false when the space is
// exhausted.
func (g *Generator) Next() (string, bool) {
	if g.prefix >= len(candidatePrefixes) {
		return "", false
	}

	name := fmt.Sprintf("%s%03d%s",
		candidatePrefixes[g.prefix],
		g.num,
		candidateExtensions[g.ext])

	g.num++
	if g.num > candidateMaxNumber {
		g.num = 1
		g.ext++
		if g.ext >= len(candidateExtensions) {
			g.ext = 0
			g.prefix++
		}
	}
	return name, true
}
