// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/mohae/tmpl"
	"github.com/mohae/tmpl/internal/bind"
	"github.com/mohae/tmpl/internal/schemaconfig"
)

// TestRenderGreetingFixture exercises the same compile/load/apply path
// runRender drives, snapshotting the rendered output the way a golden CLI
// test pins a known-good render.
func TestRenderGreetingFixture(t *testing.T) {
	sc, err := schemaconfig.Load("../../../testdata/greeting.schema.yaml")
	if err != nil {
		t.Fatalf("schemaconfig.Load: %v", err)
	}

	tpl, err := tmpl.CompileFile("../../../testdata/greeting.tmpl", sc)
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}

	data, err := bind.LoadJSONFile("../../../testdata/greeting.json")
	if err != nil {
		t.Fatalf("LoadJSONFile: %v", err)
	}

	out, err := tpl.Apply(data)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	snaps.MatchSnapshot(t, out)
}
