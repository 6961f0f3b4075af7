package cluster

import "sort"

// Clusterer merges noisy 1-D coordinates into clean boundary lines.
// Structure recognition emits several slightly different coordinates
// for the same true gridline; clustering collapses them to one center
// per line while keeping genuinely distinct lines apart.
type Clusterer struct {
	// SmallGapFloor is the minimum clustering threshold in pixels.
	// When the mean gap between coordinates falls below it, the floor
	// is used directly so closely packed lines keep their detail.
	SmallGapFloor float64

	// GapFraction is the fraction of the mean gap used as the
	// clustering threshold when coordinates are not closely packed.
	GapFraction float64
}

// NewClusterer creates a clusterer with default settings.
func NewClusterer() *Clusterer {
	return &Clusterer{
		SmallGapFloor: 5.0,
		GapFraction:   0.7,
	}
}

// group is an in-progress cluster of coordinates.
type group struct {
	sum   float64
	count int
}

func (g *group) center() float64 {
	return g.sum / float64(g.count)
}

func (g *group) add(coord float64) {
	g.sum += coord
	g.count++
}

// Cluster reduces a set of coordinates to sorted cluster centers. The
// result is independent of input order, and clustering an already
// clustered set returns it unchanged.
func (c *Clusterer) Cluster(coords []float64) []float64 {
	sorted := sortUnique(coords)
	if len(sorted) < 2 {
		return sorted
	}

	threshold := c.threshold(sorted)

	// First pass: greedy walk, starting a new cluster whenever the
	// next coordinate is too far from the current cluster's running
	// mean.
	groups := []group{{sum: sorted[0], count: 1}}
	for _, coord := range sorted[1:] {
		cur := &groups[len(groups)-1]
		if coord-cur.center() > threshold {
			groups = append(groups, group{sum: coord, count: 1})
		} else {
			cur.add(coord)
		}
	}

	// Second pass: merge adjacent centers that landed within half the
	// threshold of each other. A single greedy pass can leave echo
	// clusters where coordinate density varies; merging to a fixpoint
	// yields a stable, minimal boundary set. The loop terminates
	// because the cluster count strictly decreases on every merge.
	for merged := true; merged && len(groups) > 1; {
		merged = false
		next := groups[:1]
		for _, g := range groups[1:] {
			last := &next[len(next)-1]
			if g.center()-last.center() <= threshold/2 {
				last.sum += g.sum
				last.count += g.count
				merged = true
			} else {
				next = append(next, g)
			}
		}
		groups = next
	}

	centers := make([]float64, len(groups))
	for i, g := range groups {
		centers[i] = g.center()
	}
	sort.Float64s(centers)
	return centers
}

// threshold derives the clustering threshold from the gaps between
// consecutive sorted coordinates.
func (c *Clusterer) threshold(sorted []float64) float64 {
	total := 0.0
	for i := 1; i < len(sorted); i++ {
		total += sorted[i] - sorted[i-1]
	}
	mean := total / float64(len(sorted)-1)

	if mean < c.SmallGapFloor {
		return c.SmallGapFloor
	}
	return mean * c.GapFraction
}

// sortUnique returns the coordinates sorted ascending with exact
// duplicates removed. The input slice is not modified.
func sortUnique(coords []float64) []float64 {
	out := append([]float64(nil), coords...)
	sort.Float64s(out)
	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}
