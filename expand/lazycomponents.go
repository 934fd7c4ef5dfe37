package expand

import (
	"reflect"

	"github.com/injectkit/injectkit/dierr"
	"github.com/injectkit/injectkit/entry"
)

// handleNoArgs expands a no-args lazy component the first time it is
// encountered, replays nothing for later encounters (dedup by
// factory identity), and reports an installation-cycle error if the same
// component is reached again while still being expanded.
func (e *engine) handleNoArgs(v entry.LazyComponentNoArgs) *dierr.Error {
	if e.fullyExpandedNoArgs[v.ID] {
		return nil
	}

	if repl, ok := e.replacementsNoArgs[v.ID]; ok {
		delete(e.replacementsNoArgs, v.ID)
		e.inProgressNoArgs[v.ID] = true
		e.pushActiveName(v.Name)
		e.stack = append(e.stack, entry.EndMarkerNoArgs{ID: v.ID, Name: v.Name})
		e.stack = append(e.stack, repl)
		return nil
	}

	if e.inProgressNoArgs[v.ID] {
		return dierr.NewLazyComponentInstallationLoop(cyclePath(e.activeNames, v.Name))
	}

	e.inProgressNoArgs[v.ID] = true
	e.pushActiveName(v.Name)
	e.stack = append(e.stack, entry.EndMarkerNoArgs{ID: v.ID, Name: v.Name})
	e.pushReversed(v.Factory())
	return nil
}

// handleWithArgs is handleNoArgs' counterpart for lazy components bound
// with arguments, keyed by structural (fn, args) identity rather than by
// factory pointer alone.
func (e *engine) handleWithArgs(v entry.LazyComponentWithArgs) *dierr.Error {
	if e.fullyExpandedWithArgs.Contains(v.Key) {
		return nil
	}

	if repl, ok := e.replacementsWithArgs.Get(v.Key); ok {
		e.replacementsWithArgs.Remove(v.Key)
		e.inProgressWithArgs.Add(v.Key)
		e.pushActiveName(v.Name)
		e.stack = append(e.stack, entry.EndMarkerWithArgs{Key: v.Key, Name: v.Name})
		e.stack = append(e.stack, repl)
		return nil
	}

	if e.inProgressWithArgs.Contains(v.Key) {
		return dierr.NewLazyComponentInstallationLoop(cyclePath(e.activeNames, v.Name))
	}

	e.inProgressWithArgs.Add(v.Key)
	e.pushActiveName(v.Name)
	e.stack = append(e.stack, entry.EndMarkerWithArgs{Key: v.Key, Name: v.Name})
	e.pushReversed(v.Factory(v.Key.Args))
	return nil
}

// handleReplacement registers a replacement for a lazy component that has
// not yet begun expanding. A replacement declared for a component already
// in progress or fully expanded is too late; a second, non-identical
// replacement for the same target conflicts with the first.
func (e *engine) handleReplacement(v entry.ReplacedLazyComponent) *dierr.Error {
	replName := "replacement"
	switch r := v.Replacement.(type) {
	case entry.LazyComponentNoArgs:
		replName = r.Name
	case entry.LazyComponentWithArgs:
		replName = r.Name
	}

	if v.IsArgs {
		if e.fullyExpandedWithArgs.Contains(v.WithArgsTarget) || e.inProgressWithArgs.Contains(v.WithArgsTarget) {
			return dierr.NewReplacementAfterExpansion(v.TargetName, replName)
		}
		if existing, ok := e.replacementsWithArgs.Get(v.WithArgsTarget); ok && !sameReplacement(existing, v.Replacement) {
			return dierr.NewIncompatibleReplacements(v.TargetName, "earlier replacement", "this replacement")
		}
		e.replacementsWithArgs.Set(v.WithArgsTarget, v.Replacement)
		return nil
	}

	if e.fullyExpandedNoArgs[v.NoArgsTarget] || e.inProgressNoArgs[v.NoArgsTarget] {
		return dierr.NewReplacementAfterExpansion(v.TargetName, replName)
	}
	if existing, ok := e.replacementsNoArgs[v.NoArgsTarget]; ok && !sameReplacement(existing, v.Replacement) {
		return dierr.NewIncompatibleReplacements(v.TargetName, "earlier replacement", "this replacement")
	}
	e.replacementsNoArgs[v.NoArgsTarget] = v.Replacement
	return nil
}

// sameReplacement reports whether a and b name the same replacement
// component, using identity rather than reflect.DeepEqual so that
// re-declaring the identical replacement twice stays idempotent (DeepEqual
// treats any two non-nil funcs as unequal, which would make every
// factory-holding replacement look like a conflict with itself).
func sameReplacement(a, b entry.Entry) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case entry.LazyComponentNoArgs:
		return av.ID == b.(entry.LazyComponentNoArgs).ID
	case entry.LazyComponentWithArgs:
		return av.Key.Equal(b.(entry.LazyComponentWithArgs).Key)
	case entry.ConstructedObject:
		bv := b.(entry.ConstructedObject)
		return av.Type == bv.Type && reflect.DeepEqual(av.Value, bv.Value)
	case entry.ObjectToConstruct:
		bv := b.(entry.ObjectToConstruct)
		return av.Type == bv.Type && reflect.ValueOf(av.Create).Pointer() == reflect.ValueOf(bv.Create).Pointer()
	default:
		return reflect.DeepEqual(a, b)
	}
}
