package jsontree

// Merge folds source into target and returns the result.
//
// Objects merge key by key: keys present in both are merged recursively,
// new keys are appended in source order. Arrays concatenate. In every other
// case, including a kind mismatch, source replaces target. The target tree
// is updated in place; source subtrees are copied so the result never shares
// nodes with source.
func Merge(target, source *Node) *Node {
	if source == nil {
		return target
	}
	if target == nil {
		return source.Clone()
	}

	switch {
	case target.kind == Object && source.kind == Object:
		for _, key := range source.keys {
			value := source.fields[key]
			if existing, ok := target.fields[key]; ok {
				target.fields[key] = Merge(existing, value)
				continue
			}
			target.Set(key, value.Clone())
		}
		return target

	case target.kind == Array && source.kind == Array:
		for _, item := range source.items {
			target.items = append(target.items, item.Clone())
		}
		return target

	default:
		return source.Clone()
	}
}
