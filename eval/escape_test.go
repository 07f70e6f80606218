// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"strings"
	"testing"
)

func TestWriteEscaped(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no special bytes", "hello world", "hello world"},
		{"each entity", `<>&"'/`, "&lt;&gt;&amp;&quot;&#x27;&#x2f;"},
		{"mixed", `<a href="/x">it's</a>`, "&lt;a href=&quot;&#x2f;x&quot;&gt;it&#x27;s&lt;&#x2f;a&gt;"},
		{"leading and trailing plain text", "a<b>c", "a&lt;b&gt;c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w strings.Builder
			writeEscaped(&w, tt.in)
			if got := w.String(); got != tt.want {
				t.Errorf("writeEscaped(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
