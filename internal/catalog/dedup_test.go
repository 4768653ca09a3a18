package catalog

import (
	"reflect"
	"testing"
)

func TestDedupGenerations(t *testing.T) {
	tests := []struct {
		name   string
		paths  []string
		expect []string
	}{
		{
			name:   "empty input",
			paths:  nil,
			expect: nil,
		},
		{
			name:   "single path survives",
			paths:  []string{"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_001_7.nc"},
			expect: []string{"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_001_7.nc"},
		},
		{
			name: "higher generation wins",
			paths: []string{
				"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_001_7.nc",
				"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_002_7.nc",
				"SM_OPER_MIR_SCNFSW_20220102T000000_20220102T235959_110_001_7.nc",
			},
			expect: []string{
				"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_002_7.nc",
				"SM_OPER_MIR_SCNFSW_20220102T000000_20220102T235959_110_001_7.nc",
			},
		},
		{
			name: "unordered input is sorted before the scan",
			paths: []string{
				"SM_OPER_MIR_SCNFSW_20220102T000000_20220102T235959_110_001_7.nc",
				"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_005_7.nc",
				"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_002_7.nc",
			},
			expect: []string{
				"SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_005_7.nc",
				"SM_OPER_MIR_SCNFSW_20220102T000000_20220102T235959_110_001_7.nc",
			},
		},
		{
			name: "directory prefix does not affect identity",
			paths: []string{
				"/a/SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_001_7.nc",
				"/b/SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_003_7.nc",
			},
			expect: []string{
				"/b/SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_003_7.nc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupGenerations(tt.paths)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Errorf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestDedupGenerationsEqualTieBreak(t *testing.T) {
	// Among equal generations the last-scanned duplicate wins. This is the
	// legacy greater-or-equal replacement rule; changing it to first-wins
	// would change observable output.
	paths := []string{
		"/reproc/a/SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_002_7.nc",
		"/reproc/b/SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_002_7.nc",
	}

	got := DedupGenerations(paths)
	if len(got) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(got))
	}
	if got[0] != paths[1] {
		t.Errorf("expected last-scanned equal duplicate to win, got %s", got[0])
	}
}

func TestSplitGeneration(t *testing.T) {
	tests := []struct {
		name           string
		basename       string
		expectIdentity string
		expectGen      int
	}{
		{
			name:           "standard smos name",
			basename:       "SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_002_7.nc",
			expectIdentity: "SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110",
			expectGen:      2,
		},
		{
			name:           "non-numeric generation counts as zero",
			basename:       "SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110_xxx_7.nc",
			expectIdentity: "SM_OPER_MIR_SCNFSW_20220101T000000_20220101T235959_110",
			expectGen:      0,
		},
		{
			name:           "too few tokens",
			basename:       "oddname.nc",
			expectIdentity: "oddname",
			expectGen:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, gen := splitGeneration(tt.basename)
			if identity != tt.expectIdentity {
				t.Errorf("expected identity %q, got %q", tt.expectIdentity, identity)
			}
			if gen != tt.expectGen {
				t.Errorf("expected generation %d, got %d", tt.expectGen, gen)
			}
		})
	}
}
