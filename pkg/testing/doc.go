// Package testing provides helpers for testing views and statuses.
//
// # Quick Start
//
// Create a tester, load layouts, mount a view and drive a transformer:
//
//	func TestLoading(t *testing.T) {
//	    tester := pstest.NewViewTesterWithT(t)
//	    tester.MustLoad(layouts)
//	    list := tester.MustMount("list")
//
//	    tr, err := status.NewReplacement(list, builder)
//	    ...
//	    tr.Transform("loading", nil)
//	    tester.Pump()
//
//	    if !tester.Find(pstest.ByText("Loading...")).Exists() {
//	        t.Error("expected loading text")
//	    }
//	}
//
// # Recording statuses
//
// RecordingStatus and RecordingHandler count show and hide calls, so
// transition properties can be asserted without inspecting the tree.
//
// # Snapshot Testing
//
// Compare a dump of the tree against a golden file:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/loading.snapshot")
//
// Update snapshots with:
//
//	PAGESTATUS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import pstest "github.com/go-drift/pagestatus/pkg/testing"
package testing
