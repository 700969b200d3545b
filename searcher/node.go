package searcher

// computeReward converts a playout outcome into the reward of the player
// who moved into a node. An empty player means a draw.
func computeReward(player string, score float64, mover string) float64 {
	if player == "" {
		return 0
	}
	if player == mover {
		return score
	}
	return -score
}
