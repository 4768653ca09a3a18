package catalog

// FilterByTime keeps the candidates whose temporal coverage intersects the
// reference interval, preserving input order. Closed-interval semantics: a
// candidate whose stop equals the reference start (or vice versa) is kept.
// Extraction failures surface immediately with the offending path attached.
func FilterByTime(candidates []*Candidate, ref Interval) ([]*Candidate, error) {
	var kept []*Candidate
	for _, c := range candidates {
		iv, err := c.Interval()
		if err != nil {
			return nil, err
		}
		if iv.Intersects(ref) {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
