package sweep

// dsu is a disjoint-set union over a dense range of section indices
// [0, n), used to merge sections into Partitions. Flat index-addressed
// arrays instead of a map, since section indices are already dense
// integers.
type dsu struct {
	parent []int32
	rank   []int32
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int32, n), rank: make([]int32, n)}
	for i := range d.parent {
		d.parent[i] = int32(i)
	}

	return d
}

// find walks up to the root with path compression.
func (d *dsu) find(x int32) int32 {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]] // path halving
		x = d.parent[x]
	}

	return x
}

// union merges the sets containing a and b, by rank.
func (d *dsu) union(a, b int32) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// buildPartitions groups sections into maximal connected runs using a
// disjoint-set over section indices, unioning
// adjacent sections wherever boundaryOverlap reports at least one buffer
// straddling the boundary. Because adjacency here is a simple path (section
// k only ever borders k-1 and k+1), every resulting set is automatically a
// contiguous index range.
func buildPartitions(sections []Section, boundaryOverlap []int) []Partition {
	n := len(sections)
	if n == 0 {
		return nil
	}

	d := newDSU(n)
	for k, count := range boundaryOverlap {
		if count > 0 {
			d.union(int32(k), int32(k+1))
		}
	}

	// Walk left to right; a new partition starts whenever the DSU root
	// changes, which (since unions only ever join neighbors) happens
	// exactly at the boundaries where boundaryOverlap[k] == 0.
	partitions := make([]Partition, 0)
	start := 0
	for k := 1; k <= n; k++ {
		if k < n && d.find(int32(k)) == d.find(int32(start)) {
			continue
		}
		partitions = append(partitions, Partition{
			Sections: sectionIndexRange(start, k),
			Buffers:  unionBuffers(sections[start:k]),
		})
		start = k
	}

	return partitions
}

func unionBuffers(sections []Section) []int {
	seen := make(map[int]struct{})
	for _, s := range sections {
		for _, b := range s.Live {
			seen[b] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sortInts(out)

	return out
}
