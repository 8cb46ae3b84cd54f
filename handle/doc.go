// Package handle provides opaque handle management for foreign-runtime
// objects.
//
// Foreign objects have no direct Go representation. The engine stores them
// in a Table and hands the host an integer handle; the host can only pass
// the handle back across the boundary, never inspect or copy the object.
//
// # Handle Table
//
// The Table maps integer handles to engine-owned values:
//
//	table := handle.NewTable()
//
//	// Insert a value, get a handle
//	h := table.Insert(typeID, obj)
//
//	// Retrieve value by handle
//	value, ok := table.Get(h)
//
//	// Release when the foreign runtime drops the object
//	value, ok := table.Release(h)
//
// # Identity
//
// Handles compare by identity: equal handles refer to the same foreign
// object. This is the comparison used for identity-keyed mappings, where
// keys are foreign objects rather than hashable host values.
//
// # Type Safety
//
// Each object class gets a unique type ID:
//
//	const TensorTypeID = 1
//	const SessionTypeID = 2
//
//	value, ok := table.GetTyped(h, TensorTypeID)
//
// # Memory Management
//
// Objects are not garbage collected across the boundary. The engine must
// Release handles when the foreign side drops them; values implementing
// Dropper get their destructor called at release time.
package handle
