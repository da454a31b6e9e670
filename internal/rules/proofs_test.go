// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBool(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"true", "YES", "y", "1", " Verified "} {
		if !ParseBool(v) {
			t.Errorf("ParseBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "no", "0", "maybe", "false"} {
		if ParseBool(v) {
			t.Errorf("ParseBool(%q) = true, want false", v)
		}
	}
}

func TestParseProofs(t *testing.T) {
	t.Parallel()

	input := "Product ID,Recommended Product ID,Compatibility Verified,Compatibility Source,Compatibility Notes\n" +
		"shoei-x15-helmet,shoei-cwr-f2-shield,yes,https://shoei.example/x15,fits X-15\n" +
		"shoei-x15-helmet,shoei-pinlock-insert,yes,,no link\n" +
		"shoei-x15-helmet,,yes,src,\n" +
		"agv-k6-helmet,agv-k6-visor,no,https://agv.example,\n"

	proofs, issues, err := ParseProofs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseProofs: %v", err)
	}
	if diff := cmp.Diff([]string{"Proofs row 4: missing Product ID or Recommended Product ID"}, issues); diff != "" {
		t.Errorf("issues (-want +got):\n%s", diff)
	}
	if !proofs.Verified("shoei-x15-helmet", "shoei-cwr-f2-shield") {
		t.Error("expected verified source-backed proof")
	}
	if proofs.Verified("shoei-x15-helmet", "shoei-pinlock-insert") {
		t.Error("verified proof without source must not count")
	}
	if proofs.Verified("agv-k6-helmet", "agv-k6-visor") {
		t.Error("unverified proof must not count")
	}
	if diff := cmp.Diff([]string{"shoei-cwr-f2-shield"}, proofs.VerifiedFor("shoei-x15-helmet")); diff != "" {
		t.Errorf("VerifiedFor (-want +got):\n%s", diff)
	}
}

func TestParseProofs_MissingColumns(t *testing.T) {
	t.Parallel()

	proofs, issues, err := ParseProofs(strings.NewReader("Product ID,Recommended Product ID\na,b\n"))
	if err != nil {
		t.Fatalf("ParseProofs: %v", err)
	}
	if len(proofs) != 0 {
		t.Errorf("expected no proofs, got %d", len(proofs))
	}
	want := "Compatibility proofs file missing required columns: Compatibility Source, Compatibility Verified"
	if len(issues) != 1 || issues[0] != want {
		t.Errorf("issues = %v, want [%s]", issues, want)
	}
}

func TestLoadProofs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	proofs, issues, err := LoadProofs("")
	if err != nil || len(issues) != 0 || len(proofs) != 0 {
		t.Errorf("empty path: (%v, %v, %v)", proofs, issues, err)
	}

	missing := filepath.Join(dir, "proofs.csv")
	_, issues, err = LoadProofs(missing)
	if err != nil {
		t.Fatalf("LoadProofs(missing): %v", err)
	}
	if len(issues) != 1 || !strings.HasPrefix(issues[0], "Compatibility proofs file not found") {
		t.Errorf("issues = %v", issues)
	}

	content := strings.Join(ProofHeader, ",") + "\nh,r,1,src,,\n"
	if err := os.WriteFile(missing, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	proofs, issues, err = LoadProofs(missing)
	if err != nil || len(issues) != 0 {
		t.Fatalf("LoadProofs: issues=%v err=%v", issues, err)
	}
	if !proofs.Verified("h", "r") {
		t.Error("expected verified pair h->r")
	}
}
