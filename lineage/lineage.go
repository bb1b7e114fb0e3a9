package lineage

import (
	"fmt"
	"sort"

	rare "github.com/marco-hrlic/go-rare"
)

// Tree is the genealogy of a fixed size ensemble.
// Generation g stores, for each member of generation g+1, the index of its parent in generation g.
type Tree struct {
	size    int
	parents [][]int
}

// New creates an empty genealogy for ensembles of the given size
func New(size int) (*Tree, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", rare.ErrInvalidSize, size)
	}

	return &Tree{size: size}, nil
}

// Size returns ensemble size
func (t *Tree) Size() int {
	return t.size
}

// Generations returns the number of recorded resampling steps
func (t *Tree) Generations() int {
	return len(t.parents)
}

// Append records the parents of a new generation
func (t *Tree) Append(parents []int) error {
	if len(parents) != t.size {
		return fmt.Errorf("%w: got %d parents, expected %d", rare.ErrInvalidSelection, len(parents), t.size)
	}

	for i, p := range parents {
		if p < 0 || p >= t.size {
			return fmt.Errorf("%w: parent %d of member %d out of range", rare.ErrInvalidSelection, p, i)
		}
	}

	gen := make([]int, len(parents))
	copy(gen, parents)
	t.parents = append(t.parents, gen)

	return nil
}

// Parents returns the parent indices recorded at generation gen
func (t *Tree) Parents(gen int) ([]int, error) {
	if gen < 0 || gen >= len(t.parents) {
		return nil, fmt.Errorf("invalid generation: %d", gen)
	}

	p := make([]int, t.size)
	copy(p, t.parents[gen])

	return p, nil
}

// Ancestors returns the ancestral line of member i of the latest generation.
// The first element is the ancestor's index in the initial ensemble, the last one is i.
func (t *Tree) Ancestors(i int) ([]int, error) {
	if i < 0 || i >= t.size {
		return nil, fmt.Errorf("invalid member index: %d", i)
	}

	line := make([]int, len(t.parents)+1)
	line[len(t.parents)] = i
	for g := len(t.parents) - 1; g >= 0; g-- {
		i = t.parents[g][i]
		line[g] = i
	}

	return line, nil
}

// Distinct returns the number of distinct parents chosen at generation gen
func (t *Tree) Distinct(gen int) (int, error) {
	if gen < 0 || gen >= len(t.parents) {
		return 0, fmt.Errorf("invalid generation: %d", gen)
	}

	return countDistinct(t.parents[gen]), nil
}

// Roots returns the sorted indices of initial members that still have descendants
func (t *Tree) Roots() []int {
	alive := make(map[int]struct{}, t.size)
	for i := 0; i < t.size; i++ {
		r := i
		for g := len(t.parents) - 1; g >= 0; g-- {
			r = t.parents[g][r]
		}
		alive[r] = struct{}{}
	}

	roots := make([]int, 0, len(alive))
	for r := range alive {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	return roots
}

func countDistinct(idx []int) int {
	seen := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		seen[i] = struct{}{}
	}

	return len(seen)
}
