package ai

import (
	"context"
	"fmt"
	"math"
	"profile-lab/domain"
	"profile-lab/errors"
	"sort"
)

const (
	BoostFormatVersion = 1
	KindBoostedTrees   = "gbdt"
)

// BoostParams configures the gradient boosted trees learner.
// Defaults follow the usual XGBoost ones for a binary:logistic objective.
type BoostParams struct {
	Rounds         int     `json:"rounds"`
	MaxDepth       int     `json:"max_depth"`
	LearningRate   float64 `json:"learning_rate"`
	Lambda         float64 `json:"lambda"`
	MinChildWeight float64 `json:"min_child_weight"`
	// ScalePosWeight multiplies the gradient of every fake (positive) row.
	ScalePosWeight float64 `json:"scale_pos_weight"`
}

func DefaultBoostParams() BoostParams {
	return BoostParams{
		Rounds:         100,
		MaxDepth:       6,
		LearningRate:   0.3,
		Lambda:         1,
		MinChildWeight: 1,
		ScalePosWeight: 1,
	}
}

func (p BoostParams) withDefaults() BoostParams {
	d := DefaultBoostParams()
	if p.Rounds <= 0 {
		p.Rounds = d.Rounds
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = d.MaxDepth
	}
	if p.LearningRate <= 0 {
		p.LearningRate = d.LearningRate
	}
	if p.Lambda < 0 {
		p.Lambda = d.Lambda
	}
	if p.MinChildWeight < 0 {
		p.MinChildWeight = d.MinChildWeight
	}
	if p.ScalePosWeight <= 0 {
		p.ScalePosWeight = d.ScalePosWeight
	}
	return p
}

// TreeNode is either a split (row[Feature] < Threshold goes Left) or a leaf carrying Value.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t Tree) score(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if row[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// BoostedTrees is an additive ensemble of regression trees on the logit scale.
type BoostedTrees struct {
	Version    int         `json:"version"`
	Params     BoostParams `json:"params"`
	BaseMargin float64     `json:"base_margin"`
	NumFeature int         `json:"num_features"`
	Trees      []Tree      `json:"trees"`
	Gain       []float64   `json:"gain"`
}

// FitBoostedTrees grows params.Rounds trees level by level with the exact greedy
// split search. Every feature is presorted once, a level then costs one pass per feature.
func FitBoostedTrees(ctx context.Context, rows [][]float64, labels []domain.Label, params BoostParams) (*BoostedTrees, error) {
	if len(rows) == 0 {
		return nil, errors.ErrTrainingDataEmpty
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("got %d rows for %d labels", len(rows), len(labels))
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), width)
		}
	}
	params = params.withDefaults()

	n := len(rows)
	y := make([]float64, n)
	weight := make([]float64, n)
	for i, l := range labels {
		weight[i] = 1
		if l == domain.LabelFake {
			y[i] = 1
			weight[i] = params.ScalePosWeight
		}
	}

	grower := &treeGrower{
		rows:   rows,
		sorted: presort(rows, width),
		grad:   make([]float64, n),
		hess:   make([]float64, n),
		params: params,
		gain:   make([]float64, width),
	}
	model := &BoostedTrees{
		Version:    BoostFormatVersion,
		Params:     params,
		NumFeature: width,
		Trees:      make([]Tree, 0, params.Rounds),
	}
	margin := make([]float64, n)
	for i := range margin {
		margin[i] = model.BaseMargin
	}

	for round := 0; round < params.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range margin {
			p := sigmoid(margin[i])
			grower.grad[i] = weight[i] * (p - y[i])
			grower.hess[i] = weight[i] * p * (1 - p)
		}
		tree, leafOf := grower.grow()
		for i := range margin {
			margin[i] += tree.Nodes[leafOf[i]].Value
		}
		model.Trees = append(model.Trees, tree)
	}
	model.Gain = grower.gain
	return model, nil
}

func presort(rows [][]float64, width int) [][]int {
	sorted := make([][]int, width)
	for f := 0; f < width; f++ {
		idx := make([]int, len(rows))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return rows[idx[a]][f] < rows[idx[b]][f] })
		sorted[f] = idx
	}
	return sorted
}

type treeGrower struct {
	rows   [][]float64
	sorted [][]int
	grad   []float64
	hess   []float64
	params BoostParams
	gain   []float64
}

type gradStat struct {
	g, h float64
}

type splitCandidate struct {
	valid     bool
	gain      float64
	feature   int
	threshold float64
}

type scanState struct {
	seen bool
	last float64
	gradStat
}

// grow returns the tree and, for every row, the index of the leaf it ends in.
func (t *treeGrower) grow() (Tree, []int) {
	n := len(t.rows)
	nodes := []TreeNode{{Leaf: true}}
	rowNode := make([]int, n)
	level := []int{0}

	for depth := 0; depth < t.params.MaxDepth && len(level) > 0; depth++ {
		sums := t.sums(rowNode, len(nodes))
		active := make([]bool, len(nodes))
		for _, id := range level {
			active[id] = true
		}
		best := make([]splitCandidate, len(nodes))
		scan := make([]scanState, len(nodes))

		for f, order := range t.sorted {
			for _, id := range level {
				scan[id] = scanState{}
			}
			for _, idx := range order {
				id := rowNode[idx]
				if !active[id] {
					continue
				}
				st := &scan[id]
				x := t.rows[idx][f]
				if st.seen && x != st.last {
					t.consider(&best[id], sums[id], st.gradStat, f, (st.last+x)/2)
				}
				st.g += t.grad[idx]
				st.h += t.hess[idx]
				st.last = x
				st.seen = true
			}
		}

		next := make([]int, 0, 2*len(level))
		for _, id := range level {
			b := best[id]
			if !b.valid {
				nodes[id] = t.leaf(sums[id])
				continue
			}
			left := len(nodes)
			nodes[id] = TreeNode{Feature: b.feature, Threshold: b.threshold, Left: left, Right: left + 1}
			nodes = append(nodes, TreeNode{Leaf: true}, TreeNode{Leaf: true})
			t.gain[b.feature] += b.gain
			next = append(next, left, left+1)
		}
		for i := range rowNode {
			nd := nodes[rowNode[i]]
			if nd.Leaf {
				continue
			}
			if t.rows[i][nd.Feature] < nd.Threshold {
				rowNode[i] = nd.Left
			} else {
				rowNode[i] = nd.Right
			}
		}
		level = next
	}

	if len(level) > 0 {
		sums := t.sums(rowNode, len(nodes))
		for _, id := range level {
			nodes[id] = t.leaf(sums[id])
		}
	}
	return Tree{Nodes: nodes}, rowNode
}

func (t *treeGrower) sums(rowNode []int, size int) []gradStat {
	sums := make([]gradStat, size)
	for i, id := range rowNode {
		sums[id].g += t.grad[i]
		sums[id].h += t.hess[i]
	}
	return sums
}

func (t *treeGrower) consider(best *splitCandidate, total, left gradStat, feature int, threshold float64) {
	right := gradStat{g: total.g - left.g, h: total.h - left.h}
	mcw := t.params.MinChildWeight
	if left.h < mcw || right.h < mcw {
		return
	}
	lambda := t.params.Lambda
	if left.h+lambda <= 0 || right.h+lambda <= 0 {
		return
	}
	gain := 0.5 * (left.g*left.g/(left.h+lambda) + right.g*right.g/(right.h+lambda) - total.g*total.g/(total.h+lambda))
	if math.IsNaN(gain) || math.IsInf(gain, 0) || gain <= 0 || (best.valid && gain <= best.gain) {
		return
	}
	*best = splitCandidate{valid: true, gain: gain, feature: feature, threshold: threshold}
}

// leaf weights a node by -G/(H+lambda). Rows with a saturated sigmoid carry no
// hessian, so without regularization the node keeps a zero weight.
func (t *treeGrower) leaf(s gradStat) TreeNode {
	denominator := s.h + t.params.Lambda
	if denominator <= 0 {
		return TreeNode{Leaf: true}
	}
	return TreeNode{Leaf: true, Value: -s.g / denominator * t.params.LearningRate}
}

func (m *BoostedTrees) Kind() string {
	return KindBoostedTrees
}

func (m *BoostedTrees) NumFeatures() int {
	return m.NumFeature
}

// Margin is the raw logit of a row being fake.
func (m *BoostedTrees) Margin(row []float64) (float64, error) {
	if len(row) != m.NumFeature {
		return 0, fmt.Errorf("%w: row has %d columns, classifier expects %d",
			errors.ErrVectorizerMismatch, len(row), m.NumFeature)
	}
	margin := m.BaseMargin
	for _, tree := range m.Trees {
		margin += tree.score(row)
	}
	return margin, nil
}

// PredictProba returns [P(real), P(fake)].
func (m *BoostedTrees) PredictProba(row []float64) ([2]float64, error) {
	margin, err := m.Margin(row)
	if err != nil {
		return [2]float64{}, err
	}
	p := sigmoid(margin)
	return [2]float64{1 - p, p}, nil
}

func (m *BoostedTrees) Predict(row []float64) (domain.Label, error) {
	proba, err := m.PredictProba(row)
	if err != nil {
		return domain.LabelReal, err
	}
	if proba[1] > 0.5 {
		return domain.LabelFake, nil
	}
	return domain.LabelReal, nil
}

// Validate checks a decoded ensemble so that scoring can never index out of range or loop.
func (m *BoostedTrees) Validate() error {
	if m.Version != BoostFormatVersion {
		return fmt.Errorf("unsupported classifier format version %d", m.Version)
	}
	if m.NumFeature <= 0 {
		return fmt.Errorf("classifier declares %d features", m.NumFeature)
	}
	for ti, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Leaf {
				continue
			}
			if node.Feature < 0 || node.Feature >= m.NumFeature {
				return fmt.Errorf("tree %d node %d splits on unknown feature %d", ti, ni, node.Feature)
			}
			if node.Left <= ni || node.Right <= ni || node.Left >= len(tree.Nodes) || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has invalid children", ti, ni)
			}
		}
	}
	return nil
}

// FeatureImportance is the total split gain attributed to one column.
type FeatureImportance struct {
	Feature string  `json:"feature"`
	Gain    float64 `json:"gain"`
}

// Importance ranks columns by total gain, highest first; columns never split on are omitted.
func (m *BoostedTrees) Importance(names []string) []FeatureImportance {
	ranked := make([]FeatureImportance, 0, len(m.Gain))
	for i, g := range m.Gain {
		if g <= 0 {
			continue
		}
		name := fmt.Sprintf("f%d", i)
		if i < len(names) {
			name = names[i]
		}
		ranked = append(ranked, FeatureImportance{Feature: name, Gain: g})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Gain > ranked[j].Gain })
	return ranked
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
