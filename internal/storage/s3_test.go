package storage

import "testing"

func TestSnapshotKey(t *testing.T) {
	cases := []struct {
		name   string
		region string
		want   string
	}{
		{"simple", "alps-huts", "snapshots/alps-huts.jsonl.gz"},
		{"spaces become hyphens", "Dolomites East", "snapshots/dolomites-east.jsonl.gz"},
		{"uppercase lowered", "TIROL", "snapshots/tirol.jsonl.gz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SnapshotKey(tc.region); got != tc.want {
				t.Fatalf("SnapshotKey(%q) = %q; want %q", tc.region, got, tc.want)
			}
		})
	}
}
