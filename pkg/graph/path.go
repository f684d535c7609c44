package graph

// PathKind discriminates the two connector shapes.
type PathKind string

// Connector shapes.
const (
	PathLine  PathKind = "line"
	PathCubic PathKind = "cubic"
)

// Point is a 2D coordinate in layout space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Path is the drawable geometry of one edge: either a straight segment or a
// cubic Bézier with two control points. The coordinates are a pure function
// of the edge's rows and lanes plus the fixed constants in Params - no
// pixel rendering happens here.
type Path struct {
	Kind PathKind `json:"kind" bson:"kind"`
	From Point    `json:"from" bson:"from"`
	To   Point    `json:"to" bson:"to"`
	C1   Point    `json:"c1,omitempty" bson:"c1,omitempty"`
	C2   Point    `json:"c2,omitempty" bson:"c2,omitempty"`
}

// EdgePath computes the connector geometry for one edge.
//
// Straight segments are used when the lanes match or the edge spans a single
// row; everything else gets a cubic curve whose control points are
// proportioned to the horizontal and vertical distance. Endpoints are biased
// inward by the node radius so curves do not overlap the commit markers.
func (l *Layout) EdgePath(e Edge, p Params) Path {
	from := l.NodeCenter(e.FromRow, e.FromLane, p)
	to := l.NodeCenter(e.ToRow, e.ToLane, p)

	if e.FromLane == e.ToLane || e.ToRow-e.FromRow == 1 {
		return Path{Kind: PathLine, From: from, To: to}
	}

	// Leave the child marker downward and enter the parent marker upward.
	from.Y += p.NodeRadius
	to.Y -= p.NodeRadius

	dy := to.Y - from.Y
	return Path{
		Kind: PathCubic,
		From: from,
		To:   to,
		C1:   Point{X: from.X, Y: from.Y + dy*0.4},
		C2:   Point{X: to.X, Y: to.Y - dy*0.4},
	}
}
