// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"reflect"
	"testing"
)

type address struct {
	City string
}

type account struct {
	Name    string
	Balance int
	Home    address
}

func TestResolveStructField(t *testing.T) {
	data := account{Name: "Ada", Balance: 42}

	v, ok := resolve(data, "Name")
	if !ok || v.String() != "Ada" {
		t.Fatalf("resolve(Name) = %v, %v", v, ok)
	}

	v, ok = resolve(data, "name") // case-insensitive match
	if !ok || v.String() != "Ada" {
		t.Fatalf("resolve(name) = %v, %v", v, ok)
	}
}

func TestResolveNestedPath(t *testing.T) {
	data := account{Home: address{City: "Austin"}}

	v, ok := resolve(data, "Home.City")
	if !ok || v.String() != "Austin" {
		t.Fatalf("resolve(Home.City) = %v, %v", v, ok)
	}

	v, ok = resolve(data, "Home/City")
	if !ok || v.String() != "Austin" {
		t.Fatalf("resolve(Home/City) = %v, %v", v, ok)
	}
}

func TestResolveMap(t *testing.T) {
	data := map[string]interface{}{"Name": "Grace"}
	v, ok := resolve(data, "Name")
	if !ok || v.Interface() != "Grace" {
		t.Fatalf("resolve(Name) = %v, %v", v, ok)
	}
}

func TestResolveMissing(t *testing.T) {
	data := account{Name: "Ada"}
	if _, ok := resolve(data, "Nickname"); ok {
		t.Fatal("resolve(Nickname) unexpectedly succeeded")
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want bool
	}{
		{"empty string", "", true},
		{"non-empty string", "x", false},
		{"zero int", 0, true},
		{"non-zero int", 1, false},
		{"nil slice", []int(nil), true},
		{"non-empty slice", []int{1}, false},
		{"false bool", false, true},
		{"true bool", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmpty(reflect.ValueOf(tt.v)); got != tt.want {
				t.Errorf("isEmpty(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestIterValues(t *testing.T) {
	v := reflect.ValueOf([]string{"a", "b", "c"})
	var got []string
	iterValues(v)(func(item interface{}) bool {
		got = append(got, item.(string))
		return true
	})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIterValuesStopsEarly(t *testing.T) {
	v := reflect.ValueOf([]int{1, 2, 3, 4})
	var seen int
	iterValues(v)(func(item interface{}) bool {
		seen++
		return item.(int) < 2
	})
	if seen != 2 {
		t.Fatalf("yield called %d times, want 2", seen)
	}
}
