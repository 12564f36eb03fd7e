package engine

// ReconstructPath walks predecessor links backward from target and
// returns the node sequence in forward order. A target with no recorded
// predecessor yields a single-node path. The walk is bounded by the map
// size, so a malformed predecessor cycle cannot loop forever.
func ReconstructPath(pred map[string]string, target string) []string {
	path := []string{target}
	current := target
	for i := 0; i <= len(pred); i++ {
		p, ok := pred[current]
		if !ok {
			break
		}
		path = append(path, p)
		current = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
