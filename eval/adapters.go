// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"reflect"
	"strconv"
	"strings"
)

// The four adapters below are the Go stand-ins for the original's built-in
// append_to_strbuf function pointers (lwan_append_str_to_strbuf,
// lwan_append_str_escaped_to_strbuf, and the numeric equivalents every
// lwan_tpl-based service defines for itself). OpVariableStr/
// OpVariableStrEscape call StringAdapter/EscapedStringAdapter directly,
// skipping the Kind switch in appendValue; OpVariable's generic path in
// appendValue picks one of these four (or IntAdapter/FloatAdapter) once it
// has inspected the bound value's reflect.Kind.

// StringAdapter writes v verbatim.
func StringAdapter(w *strings.Builder, v reflect.Value) {
	w.WriteString(stringValue(v))
}

// EscapedStringAdapter writes v with writeEscaped's HTML/attribute
// entities substituted.
func EscapedStringAdapter(w *strings.Builder, v reflect.Value) {
	writeEscaped(w, stringValue(v))
}

// IntAdapter writes v's integer value in base 10.
func IntAdapter(w *strings.Builder, v reflect.Value) {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		w.WriteString(strconv.FormatUint(v.Uint(), 10))
	default:
		w.WriteString(strconv.FormatInt(v.Int(), 10))
	}
}

// FloatAdapter writes v's floating point value using the shortest
// representation that round-trips.
func FloatAdapter(w *strings.Builder, v reflect.Value) {
	w.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
}
