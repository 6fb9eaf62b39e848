package featuremap

import "testing"

// fixedMeasure treats every rune as 7px wide and 10px tall.
func fixedMeasure(s string, bold bool) (int, int) { return 7 * len([]rune(s)), 10 }

func TestAssignLevels(t *testing.T) {
	cases := []struct {
		name  string
		spans []span
		want  []int
		n     int
	}{
		{"disjoint", []span{{0, 5}, {5, 10}, {12, 20}}, []int{0, 0, 0}, 1},
		{"nested", []span{{0, 100}, {10, 11}, {20, 21}}, []int{0, 1, 1}, 2},
		{"overlap chain", []span{{0, 10}, {5, 15}, {8, 20}, {16, 30}}, []int{0, 1, 2, 0}, 3},
		{"unsorted input", []span{{20, 30}, {0, 25}}, []int{1, 0}, 2},
		{"empty", nil, []int{}, 0},
	}
	for _, tc := range cases {
		got, n := assignLevels(tc.spans)
		if n != tc.n || len(got) != len(tc.want) {
			t.Fatalf("%s: got %v (%d rows), want %v (%d rows)", tc.name, got, n, tc.want, tc.n)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestComputeLayoutBackboneAndPoints(t *testing.T) {
	rec := Record{
		SequenceLength: 20,
		Features: []Feature{
			{Start: 0, End: 20, Strand: StrandForward, Label: "Spike", Bold: true},
			{Start: 10, End: 11, Strand: StrandForward, Label: "10: 60.0%"},
			{Start: 15, End: 16, Strand: StrandForward, Label: "15: 95.0%"},
		},
	}
	g := Geometry{Left: 0, Right: 2000, MinWidth: 3, LabelPad: 4}
	lay := ComputeLayout(rec, g, fixedMeasure)

	if len(lay.Items) != 3 || lay.FeatureLevels != 2 {
		t.Fatalf("unexpected layout: %+v", lay)
	}
	bb := lay.Items[0]
	if bb.Level != 0 || bb.X0 != 0 || bb.X1 != 2000 || !bb.LabelInline {
		t.Fatalf("backbone placement %+v", bb)
	}
	p1, p2 := lay.Items[1], lay.Items[2]
	if p1.Level != 1 || p2.Level != 1 {
		t.Fatalf("points should share the row above the backbone: %d %d", p1.Level, p2.Level)
	}
	if p1.X0 != 1000 || p1.X1 != 1100 {
		t.Fatalf("point 10 at [%d,%d), want [1000,1100)", p1.X0, p1.X1)
	}
	if !p1.LabelInline && p1.LabelLevel < 0 {
		t.Fatalf("point label not placed: %+v", p1)
	}
}

func TestComputeLayoutStacksCollidingLabels(t *testing.T) {
	rec := Record{
		SequenceLength: 1000,
		Features: []Feature{
			{Start: 100, End: 101, Label: "100: 51.0%"},
			{Start: 101, End: 102, Label: "101: 77.5%"},
			{Start: 900, End: 901, Label: "900: 99.0%"},
		},
	}
	lay := ComputeLayout(rec, Geometry{Left: 0, Right: 1000, MinWidth: 3, LabelPad: 4}, fixedMeasure)
	a, b, c := lay.Items[0], lay.Items[1], lay.Items[2]
	if a.LabelInline || b.LabelInline {
		t.Fatal("labels wider than their bars must go above")
	}
	if a.LabelLevel == b.LabelLevel {
		t.Fatalf("colliding labels share row %d", a.LabelLevel)
	}
	if c.LabelLevel != 0 {
		t.Fatalf("isolated label should sit on row 0, got %d", c.LabelLevel)
	}
	if lay.LabelLevels != 2 || lay.LabelHeight != 10 {
		t.Fatalf("label rows=%d height=%d", lay.LabelLevels, lay.LabelHeight)
	}
}

func TestComputeLayoutClipsAndDrops(t *testing.T) {
	rec := Record{
		SequenceLength: 10,
		Features: []Feature{
			{Start: 8, End: 14},
			{Start: 12, End: 13},
			{Start: 3, End: 3},
		},
	}
	lay := ComputeLayout(rec, Geometry{Left: 0, Right: 100, MinWidth: 1}, nil)
	if len(lay.Items) != 2 {
		t.Fatalf("want 2 visible features, got %d", len(lay.Items))
	}
	if lay.Items[0].X0 != 80 || lay.Items[0].X1 != 100 {
		t.Fatalf("clipped feature at [%d,%d)", lay.Items[0].X0, lay.Items[0].X1)
	}
	if w := lay.Items[1].X1 - lay.Items[1].X0; w != 10 {
		t.Fatalf("empty span should widen to one base, got %dpx", w)
	}
}

func TestLabelKeptInsideFrame(t *testing.T) {
	rec := Record{SequenceLength: 100, Features: []Feature{{Start: 99, End: 100, Label: "99: 100.0%"}}}
	lay := ComputeLayout(rec, Geometry{Left: 10, Right: 510, MinWidth: 3, LabelPad: 4}, fixedMeasure)
	it := lay.Items[0]
	if it.LabelX1 > 510 || it.LabelX0 < 10 {
		t.Fatalf("label escaped frame: [%d,%d)", it.LabelX0, it.LabelX1)
	}
}

func TestFeatureOnClosingCoordinateWidensAxis(t *testing.T) {
	rec := Record{
		SequenceLength: 15,
		Features: []Feature{
			{Start: 0, End: 15, Label: "Spike"},
			{Start: 15, End: 16, Label: "15: 95.0%"},
			{Start: 17, End: 18},
		},
	}
	if got := rec.Extent(); got != 16 {
		t.Fatalf("extent %d, want 16", got)
	}
	lay := ComputeLayout(rec, Geometry{Left: 0, Right: 160, MinWidth: 1}, nil)
	if len(lay.Items) != 2 {
		t.Fatalf("want backbone and last point, got %d items", len(lay.Items))
	}
	if bb := lay.Items[0]; bb.X0 != 0 || bb.X1 != 150 {
		t.Fatalf("backbone at [%d,%d)", bb.X0, bb.X1)
	}
	if pt := lay.Items[1]; pt.X0 != 150 || pt.X1 != 160 {
		t.Fatalf("last point at [%d,%d)", pt.X0, pt.X1)
	}
}
