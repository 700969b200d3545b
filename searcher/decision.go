package searcher

import (
	"math"
	"sync"

	"othello/game"

	"golang.org/x/exp/rand"
)

type decision struct {
	sync.RWMutex
	parent   *decision
	mover    string // Player whose move led to this node
	player   string // Player in turn at this node
	moves    []game.Coordinates
	children []*decision
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, mover string, state game.State) *decision {
	moves := state.LegalMoves()
	rand.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	return &decision{
		parent:   parent,
		mover:    mover,
		player:   state.Player(),
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level from d. It expands the next unexplored
// move, or selects the child with the highest UCT score once every move has
// been explored. selected is false when the descent should stop.
func (d *decision) SelectOrExpand(state game.State) (child *decision, childState game.State, selected bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.children) < len(d.moves) { // Expandable node
		move := d.moves[len(d.children)]
		childState = state.Play(move)
		child = newDecision(d, d.player, childState)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child = d.children[ith]
	child.applyLoss()
	return child, state.Play(d.moves[ith]), true
}

func (d *decision) pickChild() int {
	policy := childPolicy(d.children)

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		rewards, visits := child.stats()
		if score := policy.evaluate(rewards, visits); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// childPolicy normalises UCT by the children's total visits, floored at one.
func childPolicy(children []*decision) *uct {
	total := 0.0
	for _, child := range children {
		_, visits := child.stats()
		total += visits
	}
	return newUCT(CSquared, math.Max(total, 1))
}

// applyLoss records a virtual loss so concurrent searches spread out.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) stats() (rewards float64, visits float64) {
	d.RLock()
	defer d.RUnlock()

	return d.rewards, d.visits
}

// Backup replaces the virtual loss with the playout reward and returns the
// parent to continue with.
func (d *decision) Backup(player string, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += computeReward(player, score, d.mover)
	d.visits++

	return d.parent
}

// Policy maps each explored move to its visit count.
func (d *decision) Policy() map[game.Coordinates]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Coordinates]float64, len(d.children))
	for i, child := range d.children {
		_, visits := child.stats()
		policy[d.moves[i]] = visits
	}
	return policy
}
