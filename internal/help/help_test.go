// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"strings"
	"testing"
)

func TestShowGeneralHelp(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowGeneralHelp([]string{"json", "text"})

	out := buf.String()
	for _, want := range []string{"-bot-message", "en, hi, auto", "Output format: json, text", "NAMEFINDER_CONFIG_DIR", "-workers"} {
		if !strings.Contains(out, want) {
			t.Errorf("general help missing %q", want)
		}
	}
}

func TestShowLanguagesHelp(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowLanguagesHelp()

	out := buf.String()
	auto, en, hi := strings.Index(out, "  auto"), strings.Index(out, "  en"), strings.Index(out, "  hi")
	if auto < 0 || en < 0 || hi < 0 {
		t.Fatalf("languages help missing an entry:\n%s", out)
	}
	if !(auto < en && en < hi) {
		t.Errorf("languages not sorted:\n%s", out)
	}
}

func TestShowLanguageHelp(t *testing.T) {
	var buf bytes.Buffer
	h := NewSystem(&buf, true)

	if !h.ShowLanguageHelp("HI") {
		t.Fatal("ShowLanguageHelp(HI) = false")
	}
	out := buf.String()
	for _, want := range []string{"Language: hi", "gate_abuse", "hindi_residual", "latin_fallback"} {
		if !strings.Contains(out, want) {
			t.Errorf("hindi help missing %q", want)
		}
	}

	buf.Reset()
	if h.ShowLanguageHelp("klingon") {
		t.Error("ShowLanguageHelp(klingon) = true")
	}
	if !strings.Contains(buf.String(), "not found") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
