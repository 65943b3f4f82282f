package gounwrap

// DisjointSet is a union-find partition over the elements 0..n-1, with
// path halving on Find and union by rank.
type DisjointSet struct {
	parent []int
	rank   []int
}

func NewDisjointSet(n int) *DisjointSet {
	d := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// Find returns the representative of x's set.
func (d *DisjointSet) Find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Equal ranks are broken toward
// x's root, which then grows by one rank.
func (d *DisjointSet) Union(x, y int) {
	rx, ry := d.Find(x), d.Find(y)
	if rx == ry {
		return
	}
	if d.rank[rx] < d.rank[ry] {
		d.parent[rx] = ry
		return
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}
}
