// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// resolve walks a dotted/slashed variable name (e.g. "user.name") against
// data, descending into struct fields (case-insensitive) and map entries
// at each path segment. This is the Go-idiomatic replacement for the C
// original's "byte offset into a caller-supplied struct": instead of a
// descriptor carrying a fixed offset computed once at schema-registration
// time, a descriptor carries a name and the binder walks to it fresh on
// every access via reflection, at the cost of that reflection lookup, in
// exchange for working against arbitrary structs and maps without any
// unsafe pointer arithmetic.
func resolve(data interface{}, name string) (reflect.Value, bool) {
	v := reflect.ValueOf(data)
	if !v.IsValid() {
		return reflect.Value{}, false
	}

	for _, part := range splitPath(name) {
		v = indirect(v)
		if !v.IsValid() {
			return reflect.Value{}, false
		}
		switch v.Kind() {
		case reflect.Map:
			mv := v.MapIndex(reflect.ValueOf(part))
			if !mv.IsValid() {
				return reflect.Value{}, false
			}
			v = mv
		case reflect.Struct:
			fv := v.FieldByNameFunc(func(n string) bool {
				return strings.EqualFold(n, part)
			})
			if !fv.IsValid() {
				return reflect.Value{}, false
			}
			v = fv
		default:
			return reflect.Value{}, false
		}
	}
	return v, true
}

func splitPath(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '/'
	})
}

// indirect dereferences pointers and interfaces until it reaches a
// concrete value, reporting the zero Value if it bottoms out on a nil.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// stringValue renders v as the fast-path string adapter does: the
// original's lwan_append_str_to_strbuf, which dereferences a char** and
// appends nothing for a nil pointer.
func stringValue(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

// appendValue is the generic C7 adapter dispatch used for OpVariable,
// deciding how to render v from its runtime reflect.Kind the way the C
// original's descriptor table picked an append_to_strbuf function pointer
// at registration time. Go can make that decision per-value instead,
// which is strictly more flexible: one KindAny descriptor can be bound
// to ints in one render and strings in another.
func appendValue(w *strings.Builder, v reflect.Value, escape bool) {
	if !v.IsValid() {
		return
	}
	switch v.Kind() {
	case reflect.String:
		if escape {
			EscapedStringAdapter(w, v)
		} else {
			StringAdapter(w, v)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		IntAdapter(w, v)
	case reflect.Float32, reflect.Float64:
		FloatAdapter(w, v)
	case reflect.Bool:
		w.WriteString(strconv.FormatBool(v.Bool()))
	default:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			if escape {
				writeEscaped(w, s.String())
			} else {
				w.WriteString(s.String())
			}
			return
		}
		if escape {
			writeEscaped(w, fmt.Sprint(v.Interface()))
		} else {
			w.WriteString(fmt.Sprint(v.Interface()))
		}
	}
}

// isEmpty generalizes lwan_tpl_str_is_empty (which only ever had to judge
// strings) to every Kind a descriptor might bind to: a value counts as
// empty when it is invalid, a nil pointer/interface, or the zero value of
// its underlying kind (empty string, zero number, false, a zero-length
// slice/map/array).
func isEmpty(v reflect.Value) bool {
	v = indirect(v)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

// iterValues reduces a bound value (expected to be a slice or array) to
// an iterFunc, the Go replacement for the C original's user-supplied
// generator callback: instead of a hand-written coroutine body that calls
// coro_yield_value once per element, a slice's own elements are yielded in
// order by a plain loop.
func iterValues(v reflect.Value) iterFunc {
	v = indirect(v)
	return func(yield func(interface{}) bool) {
		if !v.IsValid() {
			return
		}
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < v.Len(); i++ {
				if !yield(v.Index(i).Interface()) {
					return
				}
			}
		}
	}
}
