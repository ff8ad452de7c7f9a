package meta

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// cache memoizes compiled metadata per Go type for the process lifetime.
// Metadata is a pure function of the descriptor, so two concurrent first
// lookups may both compile; LoadOrStore makes every caller converge on a
// single stored entry afterwards.
var cache sync.Map // reflect.Type -> *TypeMeta

// For returns the compiled metadata for goType, compiling desc on first
// access and reusing the cached result thereafter. The descriptor for a
// given type must not vary between calls; types are immutable for the
// process's duration and the cache is never invalidated.
func For(goType reflect.Type, desc Descriptor) (*TypeMeta, error) {
	if cached, ok := cache.Load(goType); ok {
		return cached.(*TypeMeta), nil
	}

	tm, err := Compile(goType.Name(), desc)
	if err != nil {
		return nil, err
	}

	actual, loaded := cache.LoadOrStore(goType, tm)
	if !loaded {
		Logger().Debug("compiled type metadata",
			zap.String("type", goType.String()),
			zap.Int("fields", len(tm.Fields)),
			zap.Bool("hinted", tm.Hint != nil))
	}
	return actual.(*TypeMeta), nil
}
