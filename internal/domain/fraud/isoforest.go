package fraud

import (
	"fmt"
	"math"
)

// eulerGamma is the Euler-Mascheroni constant, used in the average
// unsuccessful-search path length of a binary search tree.
const eulerGamma = 0.5772156649015329

// TreeNode is one node of a serialized isolation tree. Internal nodes split
// on Feature at Threshold; a node with Left < 0 is a leaf. Size is the number
// of training samples that reached the node, used for the path-length
// adjustment at leaves.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Size      int     `json:"size"`
}

// IsolationTree is a single isolation tree in node-array form, rooted at
// index 0.
type IsolationTree struct {
	Nodes []TreeNode `json:"nodes"`
}

// IsolationForest scores rows by how easily they are isolated from the bulk
// of the training data. Raw scores follow the usual density convention:
// higher means more normal, anomalies score lower.
type IsolationForest struct {
	Trees      []IsolationTree `json:"trees"`
	SampleSize int             `json:"sample_size"`
}

// Name implements Detector.
func (f *IsolationForest) Name() string { return "isolation_forest" }

// Orientation implements Detector.
func (f *IsolationForest) Orientation() Orientation { return HigherIsNormal }

// Score returns one raw score per row: the negated isolation anomaly score
// -2^(-E(h(x))/c(n)), so that higher values indicate more normal rows.
func (f *IsolationForest) Score(features [][]float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("isolation forest: no trees loaded")
	}

	denom := averagePathLength(f.SampleSize)
	if denom <= 0 {
		denom = 1
	}

	scores := make([]float64, len(features))
	for i, row := range features {
		var total float64
		for _, tree := range f.Trees {
			depth, err := tree.pathLength(row)
			if err != nil {
				return nil, fmt.Errorf("isolation forest: row %d: %w", i, err)
			}
			total += depth
		}
		mean := total / float64(len(f.Trees))
		scores[i] = -math.Exp2(-mean / denom)
	}
	return scores, nil
}

// pathLength walks a row down the tree and returns the isolation depth,
// with the standard c(size) adjustment added at the leaf.
func (t IsolationTree) pathLength(row []float64) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, fmt.Errorf("empty tree")
	}

	idx := 0
	depth := 0.0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.Left < 0 {
			return depth + averagePathLength(node.Size), nil
		}
		if node.Feature < 0 || node.Feature >= len(row) {
			return 0, fmt.Errorf("split feature %d out of range for %d-feature row", node.Feature, len(row))
		}
		next := node.Right
		if row[node.Feature] <= node.Threshold {
			next = node.Left
		}
		if next < 0 || next >= len(t.Nodes) {
			return 0, fmt.Errorf("child index %d out of range", next)
		}
		idx = next
		depth++
	}
	return 0, fmt.Errorf("cycle detected in tree")
}

// averagePathLength is c(n): the average path length of an unsuccessful
// search in a binary search tree built from n samples.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		nf := float64(n)
		return 2*(math.Log(nf-1)+eulerGamma) - 2*(nf-1)/nf
	}
}
