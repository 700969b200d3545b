package game

// Score tallies the nodes owned by each player.
func Score(b Board, players []string) map[string]int {
	scores := make(map[string]int, len(players))
	for _, p := range players {
		scores[p] = 0
	}
	for _, n := range b.Nodes() {
		if _, ok := scores[n.Occupant]; ok {
			scores[n.Occupant]++
		}
	}
	return scores
}

// Winner returns the player owning most nodes, or "" on a tie for first place.
func Winner(b Board, players []string) string {
	scores := Score(b, players)
	winner := ""
	best := -1
	for _, p := range players {
		switch s := scores[p]; {
		case s > best:
			winner, best = p, s
		case s == best:
			winner = ""
		}
	}
	return winner
}

// EvaluateDiscs compares the nodes owned by the player in turn against all
// opponents combined.
func EvaluateDiscs(s State) float64 {
	gs := mustGameState(s)
	if gs.PlayerInTurn == "" {
		return 0
	}
	mine, theirs := gs.tally(func(player string) float64 {
		return float64(gs.Board.Count(player))
	})
	return normalize(mine, theirs)
}

// EvaluateMobility compares the number of valid moves of the player in turn
// against all opponents combined.
func EvaluateMobility(s State) float64 {
	gs := mustGameState(s)
	if gs.PlayerInTurn == "" {
		return 0
	}
	mine, theirs := gs.tally(func(player string) float64 {
		return float64(len(gs.rules.ValidMoves(gs.Board, player)))
	})
	return normalize(mine, theirs)
}

// EvaluateCorners averages disc and mobility scores with the share of corner
// nodes held. A corner is a node with at most 3 neighbours on the board,
// which cannot be outflanked on most shapes.
func EvaluateCorners(s State) float64 {
	gs := mustGameState(s)
	if gs.PlayerInTurn == "" {
		return 0
	}
	corners := gs.Board.corners()
	mine, theirs := gs.tally(func(player string) float64 {
		held := 0.0
		for _, n := range corners {
			if n.Occupant == player {
				held++
			}
		}
		return held
	})
	return (EvaluateDiscs(s) + EvaluateMobility(s) + normalize(mine, theirs)) / 3.0
}

func mustGameState(s State) GameState {
	gs, ok := s.(GameState)
	if !ok {
		panic("unexpected state type")
	}
	return gs
}

func (gs GameState) tally(measure func(player string) float64) (mine, theirs float64) {
	for _, p := range gs.Players() {
		if p == gs.PlayerInTurn {
			mine += measure(p)
		} else {
			theirs += measure(p)
		}
	}
	return mine, theirs
}

func (b Board) corners() []Node {
	var corners []Node
	for _, n := range b.Nodes() {
		neighbours := 0
		for _, d := range Directions {
			if _, ok := b.Neighbor(n, d); ok {
				neighbours++
			}
		}
		if neighbours <= 3 {
			corners = append(corners, n)
		}
	}
	return corners
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
