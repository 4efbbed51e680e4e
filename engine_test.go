package engine

import (
	"errors"
	"testing"

	"github.com/blomgraph/engine/graph"
	"github.com/blomgraph/engine/protocol"
	"github.com/blomgraph/engine/surface"
)

func threeNodePathPayload() []byte {
	nodes := []graph.Node{
		{ID: 1, X: 0, Y: 0, Importance: 1},
		{ID: 2, X: 10, Y: 0, Importance: 2},
		{ID: 3, X: 20, Y: 0, Importance: 1},
	}
	edges := []graph.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}}
	g := graph.New(nodes, edges, map[uint32]int32{1: 0, 2: 1, 3: 2})
	return protocol.Encode(g, protocol.EncodeOptions{})
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	surf := surface.NewImageSurface(400, 300)
	e, err := Construct(surf)
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	return e
}

func TestConstructRejectsNilSurface(t *testing.T) {
	_, err := Construct(nil)
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
}

func TestConstructSelectsSoftwareTierWithNoGPU(t *testing.T) {
	e := newTestEngine(t)
	if e.BackendTier() != 4 {
		t.Errorf("BackendTier() = %d, want 4 (software)", e.BackendTier())
	}
}

func TestLoadGraphPopulatesGraph(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}
	if e.graph.NodeCount() != 3 || e.graph.EdgeCount() != 2 {
		t.Fatalf("got %d nodes, %d edges, want 3, 2", e.graph.NodeCount(), e.graph.EdgeCount())
	}
}

func TestLoadGraphOnDecodeErrorLeavesPriorGraphUntouched(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("first LoadGraph() error = %v", err)
	}
	prior := e.graph

	err := e.LoadGraph([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected decode error for truncated payload")
	}
	if e.graph != prior {
		t.Error("graph was replaced despite a decode error")
	}
	if e.graph.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3 (unchanged)", e.graph.NodeCount())
	}
}

func TestStepLayoutMovesNodes(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}
	before := *e.graph.Node(0)
	e.StepLayout(50)
	after := *e.graph.Node(0)
	if before.X == after.X && before.Y == after.Y {
		t.Error("node position did not change after 50 layout steps")
	}
}

func TestStartStopControlsRunningFlag(t *testing.T) {
	e := newTestEngine(t)
	if e.Running() {
		t.Fatal("engine should not start running")
	}
	e.Start()
	if !e.Running() {
		t.Fatal("Start() did not set running")
	}
	e.Stop()
	if e.Running() {
		t.Fatal("Stop() did not clear running")
	}
}

func TestTickAndRenderOnlyStepsLayoutWhenRunning(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}

	before := *e.graph.Node(0)
	e.TickAndRender()
	afterStopped := *e.graph.Node(0)
	if before.X != afterStopped.X || before.Y != afterStopped.Y {
		t.Error("TickAndRender moved a node while not running")
	}

	e.Start()
	e.TickAndRender()
	afterRunning := *e.graph.Node(0)
	if afterStopped.X == afterRunning.X && afterStopped.Y == afterRunning.Y {
		t.Error("TickAndRender did not move a node while running")
	}
}

func TestHighlightNodesIgnoresUnknownIDs(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}

	e.HighlightNodes([]uint32{1, 999})
	if !e.graph.Node(0).Highlight {
		t.Error("node 1 should be highlighted")
	}
	if e.graph.Node(1).Highlight || e.graph.Node(2).Highlight {
		t.Error("only node 1 should be highlighted")
	}

	e.ClearHighlights()
	for i := range e.graph.Nodes {
		if e.graph.Nodes[i].Highlight {
			t.Errorf("node %d still highlighted after ClearHighlights", i)
		}
	}
}

func TestFocusNodeUnknownIDLeavesCameraUntouched(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}
	before := e.render.Camera().TargetX

	err := e.FocusNode(999)
	var uerr *UnknownIDError
	if !errors.As(err, &uerr) || uerr.ID != 999 {
		t.Fatalf("err = %v, want UnknownIDError{999}", err)
	}
	if e.render.Camera().TargetX != before {
		t.Error("camera target moved despite unknown node id")
	}
}

func TestFocusNodeKnownIDRetargetsCamera(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}

	// LoadGraph resets the layout, so node 2 sits wherever Reset placed
	// it, not at a position carried by the payload.
	n := e.graph.Node(1)
	if err := e.FocusNode(2); err != nil {
		t.Fatalf("FocusNode() error = %v", err)
	}
	cam := e.render.Camera()
	if cam.TargetX != n.X || cam.TargetY != n.Y {
		t.Errorf("camera target = (%v,%v), want (%v,%v)", cam.TargetX, cam.TargetY, n.X, n.Y)
	}
}

func TestFitViewOnEmptyGraphIsNoop(t *testing.T) {
	e := newTestEngine(t)
	before := *e.render.Camera()
	e.FitView()
	after := *e.render.Camera()
	if before != after {
		t.Error("FitView on an empty graph should not change the camera")
	}
}

func TestOnNodeClickReplacesPreviousCallback(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadGraph(threeNodePathPayload()); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}
	e.Render()

	firstCalled := false
	e.OnNodeClick(func(id uint32, ok bool) { firstCalled = true })
	secondCalled := false
	e.OnNodeClick(func(id uint32, ok bool) { secondCalled = true })

	e.HandleClick(e.render.Camera().ViewportW/2, e.render.Camera().ViewportH/2)

	if firstCalled {
		t.Error("first callback should have been replaced")
	}
	if !secondCalled {
		t.Error("second (current) callback should have been invoked")
	}
}

func TestHandleClickReportsMissOnEmptyGraph(t *testing.T) {
	e := newTestEngine(t)
	e.Render()

	var gotID uint32
	var gotOK bool
	calls := 0
	e.OnNodeClick(func(id uint32, ok bool) {
		calls++
		gotID, gotOK = id, ok
	})

	e.HandleClick(10, 10)

	if calls != 1 {
		t.Fatalf("callback invoked %d times, want 1", calls)
	}
	if gotOK {
		t.Errorf("got hit on empty graph: id=%d", gotID)
	}
}

func TestFPSIsZeroBeforeAnyRender(t *testing.T) {
	e := newTestEngine(t)
	if e.FPS() != 0 {
		t.Errorf("FPS() = %v, want 0 before any Render call", e.FPS())
	}
}

func TestFPSIsPositiveAfterRender(t *testing.T) {
	e := newTestEngine(t)
	e.Render()
	if e.FPS() <= 0 {
		t.Errorf("FPS() = %v, want > 0 after a Render call", e.FPS())
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	e.Destroy()
	e.Destroy()
}
