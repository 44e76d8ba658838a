package zorton

import "testing"

func TestFindFrameRuns(t *testing.T) {
	data := []byte("xx00001\x0000002\x00yy")
	runs := FindFrameRuns(data, 2)
	if len(runs) != 1 || len(runs[0]) != 2 {
		t.Fatalf("got %v", runs)
	}
	if runs[0][0].Offset != 2 || runs[0][1].Label != "00002" || runs[0][1].Frame() != 2 {
		t.Fatalf("unexpected run %+v", runs[0])
	}
}

func TestFindFrameRunsShortRunRescanned(t *testing.T) {
	// A lone label, one garbage byte, then three labels running to the end.
	data := []byte("00010\x00z00011\x0000012\x0000013\x00")
	runs := FindFrameRuns(data, 2)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if len(runs[0]) != 3 || runs[0][0].Offset != 7 || runs[0][2].Label != "00013" {
		t.Fatalf("unexpected run %+v", runs[0])
	}
	if got := FindFrameRuns(data, 1); len(got) != 2 {
		t.Fatalf("minRun 1: got %d runs, want 2", len(got))
	}
}

func TestFindFrameRunsRejectsMissingNul(t *testing.T) {
	if runs := FindFrameRuns([]byte("000010000020"), 1); len(runs) != 0 {
		t.Fatalf("got %v", runs)
	}
	if runs := FindFrameRuns([]byte("00001\x00"), 2); len(runs) != 0 {
		t.Fatalf("single label should not form a run: %v", runs)
	}
}
