// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import "testing"

func TestRuntimeClassifier(t *testing.T) {
	t.Parallel()

	c := RuntimeClassifier()
	tests := []struct {
		id   string
		want ProductType
	}{
		{"shoei-rf-1400-helmet", TypeHelmet},
		{"agv-k6-face-shield", TypeHelmetAccessory},
		{"pinlock-earplug-set-w-case", TypeHelmetAccessory},
		{"  ARAI-Cheek-Pad-Set  ", TypeHelmetAccessory},
		{"alpinestars-gp-plus-r-v3-jacket", TypeJacket},
		{"klim-parka", TypeJacket},
		{"revit-tornado-4-h2o-pants", TypePants},
		{"dainese-carbon-4-long-gloves", TypeGloves},
		{"held-gauntlet", TypeGloves},
		{"sidi-performer-gore-boots", TypeBoots},
		{"helmet-bag-jacket", TypeHelmet},
		{"gauntlet-boot", TypeGloves},
		{"kriega-r20-backpack", TypeUnknown},
		{"", TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			if got := c.Classify(tt.id); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestAuthoringClassifier(t *testing.T) {
	t.Parallel()

	c := AuthoringClassifier()
	tests := []struct {
		id   string
		want ProductType
	}{
		{"agv-pista-gp-rr-face-shield", TypeHelmetAccessory},
		{"klim-cheek-pads", TypeHelmetAccessory},
		{"ogio-head-case-helmet-bag", TypeHelmet},
		{"kriega-r20-backpack", TypeBackpack},
		{"sena-50s-bluetooth-headset", TypeCommunication},
		{"pirelli-diablo-rosso-iv-tire", TypeTire},
		{"k-n-air-filter", TypeAirFilter},
		{"motorex-chain-lube", TypeOil},
		{"did-520-chain", TypeChain},
		{"ebc-brake-pad", TypeBrake},
		{"forcefield-back-protector", TypeProtection},
		{"mystery-item", TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			if got := c.Classify(tt.id); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestClassifier_TablesDiffer(t *testing.T) {
	t.Parallel()

	if RuntimeClassifier().Name() == AuthoringClassifier().Name() {
		t.Fatal("classifier names must differ")
	}
	if got, want := len(RuntimeClassifier().Rules()), 6; got != want {
		t.Errorf("runtime rules = %d, want %d", got, want)
	}
	if got, want := len(AuthoringClassifier().Rules()), 14; got != want {
		t.Errorf("authoring rules = %d, want %d", got, want)
	}
}
