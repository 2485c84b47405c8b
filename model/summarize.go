package model

/*
Summarize collapses a binary document tree into its N-ary form and
returns the result as a new document; the input is never modified.

The transform runs bottom-up. Each binary split becomes a node with
two guarded children, true branch first: on numeric features the
guards are the half-open intervals [reference, null] and
[null, reference], on categorical features the reference value and
the DefaultGuard sentinel. A child that is itself a collapsed split on
the same original feature is then flattened away: its grandchildren
are promoted into the current child list, with numeric guards
intersected against the branch guard and categorical guards kept
as-is. The binary reference and branch fields do not survive the
rewrite.

Leaves and already collapsed documents are returned unchanged, so the
transform is idempotent.
*/
func Summarize(n *Node) *Node {
	if n == nil || n.IsLeaf() || n.Summarized() {
		return n
	}
	trueDoc := Summarize(n.True)
	falseDoc := Summarize(n.False)
	numeric := n.Kind.Numeric()

	var trueGuard, falseGuard interface{}
	if numeric {
		lower := toFloat(n.Reference)
		upper := lower
		trueGuard = Interval{Lower: &lower}
		falseGuard = Interval{Upper: &upper}
	} else {
		trueGuard = n.Reference
		falseGuard = DefaultGuard
	}
	candidates := []Child{
		{In: trueGuard, Then: trueDoc},
		{In: falseGuard, Then: falseDoc},
	}

	out := &Node{Feature: n.Feature, OrigFeature: n.OrigFeature, Kind: n.Kind, Children: []Child{}}
	for _, candidate := range candidates {
		child := candidate.Then
		if child != nil && child.Summarized() && child.OrigFeature == n.OrigFeature {
			for _, grandchild := range child.Children {
				promoted := grandchild
				if numeric {
					guard, ok := candidate.In.(Interval)
					sub, subOK := grandchild.In.(Interval)
					if ok && subOK {
						promoted.In = intersect(guard, sub)
					}
				}
				out.Children = append(out.Children, promoted)
			}
		} else {
			out.Children = append(out.Children, candidate)
		}
	}
	return out
}

// intersect narrows sub to the part also covered by guard: the lower
// bound is the max of both lowers, the upper the min of both uppers,
// with a nil bound deferring to the other side.
func intersect(guard, sub Interval) Interval {
	var result Interval
	switch {
	case guard.Lower != nil && sub.Lower != nil:
		lower := maxFloat(*guard.Lower, *sub.Lower)
		result.Lower = &lower
	case guard.Lower != nil:
		lower := *guard.Lower
		result.Lower = &lower
	case sub.Lower != nil:
		lower := *sub.Lower
		result.Lower = &lower
	}
	switch {
	case guard.Upper != nil && sub.Upper != nil:
		upper := minFloat(*guard.Upper, *sub.Upper)
		result.Upper = &upper
	case guard.Upper != nil:
		upper := *guard.Upper
		result.Upper = &upper
	case sub.Upper != nil:
		upper := *sub.Upper
		result.Upper = &upper
	}
	return result
}

func toFloat(reference interface{}) float64 {
	switch v := reference.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
