// Package state provides an in-memory, process-lifetime store for workflow
// execution state.
//
// # Overview
//
// A Manager holds five kinds of state:
//
//   - Variables: named values (SetVariable, GetVariable, DeleteVariable,
//     ListVariables / GetAllVariables). GetVariable returns an error for an
//     unknown name.
//   - Accumulator: a single value (GetAccumulator, SetAccumulator;
//     ResetAccumulator sets it to nil).
//   - Counter: a single float64 (GetCounter, SetCounter, IncrementCounter,
//     ResetCounter).
//   - Cache: keyed values with a TTL (SetCache, GetCache, DeleteCache,
//     ClearCache, CleanExpiredCache, GetAllCache). GetCache reports an
//     expired entry as not found; expired entries stay in the map until
//     CleanExpiredCache removes them.
//   - Context: context variables and constants (SetContextVariable,
//     GetContextVariable, SetContextConstant, GetContextConstant,
//     GetContextVariables, GetContextConstants). GetAllContext merges both,
//     with a variable overriding a constant of the same name.
//
// A Manager has one set of each: values are not scoped by workflow or node,
// nothing is persisted, and there are no transactions.
//
// # Basic Usage
//
//	sm := state.New()
//
//	_ = sm.SetVariable("greeting", "hello")
//	value, err := sm.GetVariable("greeting")
//
//	count := sm.IncrementCounter(1)
//
//	_ = sm.SetCache("result", computed, time.Hour)
//	if cached, found, _ := sm.GetCache("result"); found {
//	    use(cached)
//	}
//
// # Thread Safety
//
// Every method takes the Manager's sync.RWMutex: reads share the read lock
// and writes are serialized. The methods that return maps return copies;
// GetAllCache copies the entries but not the values they hold.
package state
