package types

import (
	"reflect"
)

// ComponentType identifies a kind of component by its concrete Go type.
// Component values need no registration step and implement no interface;
// the first time a value of a new type is stored, its column springs into
// existence. Two ComponentType values are equal exactly when they denote
// the same Go type, so they are usable as map keys.
//
// Classification is by the exact dynamic type: Position and *Position are
// distinct component types. Pick one representation per component and stay
// with it.
type ComponentType struct {
	rt reflect.Type
}

// Of returns the ComponentType for the static type T.
func Of[T any]() ComponentType {
	return ComponentType{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeOf returns the ComponentType for a value's dynamic type. A nil value
// yields the zero ComponentType.
func TypeOf(component any) ComponentType {
	return ComponentType{rt: reflect.TypeOf(component)}
}

// IsZero reports whether t denotes no type at all.
func (t ComponentType) IsZero() bool {
	return t.rt == nil
}

// Name returns the bare type name with package qualifiers and pointer marks
// stripped: both motion.Position and *motion.Position yield "Position".
// This is the key a component is bound to in where-clause environments.
func (t ComponentType) Name() string {
	if t.rt == nil {
		return ""
	}
	rt := t.rt
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if name := rt.Name(); name != "" {
		return name
	}
	return rt.String()
}

// String returns the full type string, e.g. "*motion.Position".
func (t ComponentType) String() string {
	if t.rt == nil {
		return "<nil>"
	}
	return t.rt.String()
}
