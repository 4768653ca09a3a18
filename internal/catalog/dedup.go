package catalog

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DedupGenerations collapses reprocessing generations for SMOS-family
// archives. Basenames in these archives end with a generation counter and a
// trailing cycle token; every path sharing the remaining identity prefix
// describes the same acquisition, republished. One path per identity group
// survives: the one with the numerically greatest generation.
//
// Among equal generations the last-scanned duplicate wins. That reproduces the
// legacy left-to-right greater-or-equal replacement rule; changing it to
// first-wins would silently change observable output.
func DedupGenerations(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	type entry struct {
		path     string
		identity string
		gen      int
	}

	entries := make([]entry, len(paths))
	for i, p := range paths {
		identity, gen := splitGeneration(filepath.Base(p))
		entries[i] = entry{path: p, identity: identity, gen: gen}
	}

	// The identity prefix starts with the orbit-direction and date tokens, so
	// ordering by (identity, generation) matches the legacy scan order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].identity != entries[j].identity {
			return entries[i].identity < entries[j].identity
		}
		return entries[i].gen < entries[j].gen
	})

	var out []string
	best := entries[0]
	for _, e := range entries[1:] {
		if e.identity != best.identity {
			out = append(out, best.path)
			best = e
			continue
		}
		if e.gen >= best.gen {
			best = e
		}
	}
	// The final group is emitted unconditionally, whether or not the scan
	// ended on a group boundary.
	out = append(out, best.path)

	return out
}

// splitGeneration splits a basename into its identity prefix (all tokens
// except the trailing generation and cycle counters) and the parsed
// generation number. A non-numeric generation token counts as zero.
func splitGeneration(basename string) (string, int) {
	name := strings.TrimSuffix(basename, filepath.Ext(basename))
	tokens := strings.Split(name, "_")
	if len(tokens) < 3 {
		return name, 0
	}

	gen, err := strconv.Atoi(tokens[len(tokens)-2])
	if err != nil {
		gen = 0
	}

	return strings.Join(tokens[:len(tokens)-2], "_"), gen
}
