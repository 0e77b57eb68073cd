package spatial

// Numerical policy shared by every pairwise shape test. These are hand-tuned
// constants treated as a compatibility contract rather than derived from
// machine epsilon.
const (
	// IntersectionEpsilon gates cross-product and discriminant thresholds.
	IntersectionEpsilon = 1e-8
	// SeparationEpsilon is the axis-test fudge factor for OBB/OBB SAT.
	SeparationEpsilon = 1e-6
	// ParallelEpsilon gates parallelism checks for line/ray/segment pairs.
	ParallelEpsilon = 1e-8
)

// ResultKind tags the payload carried by a Result.
type ResultKind int

const (
	// Miss means no intersection was found.
	Miss ResultKind = iota
	// Hit means a single intersection parameter TMin is valid.
	Hit
	// Span means the intersection covers a parameter range [TMin, TMax].
	Span
)

// Result is a tagged variant covering single-hit vs two-hit parametric
// intersections (ray/segment/line against a volume).
type Result struct {
	Kind       ResultKind
	TMin, TMax float32
}

// MissResult is the canonical no-intersection value.
func MissResult() Result { return Result{Kind: Miss} }

// HitResult builds a single-parameter hit.
func HitResult(t float32) Result { return Result{Kind: Hit, TMin: t, TMax: t} }

// SpanResult builds a two-parameter hit.
func SpanResult(tMin, tMax float32) Result { return Result{Kind: Span, TMin: tMin, TMax: tMax} }

// Ok reports whether the result represents any intersection at all.
func (r Result) Ok() bool { return r.Kind != Miss }
