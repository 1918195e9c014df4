package wifi

import (
	"reflect"
	"testing"
)

func TestSortNetworks(t *testing.T) {
	tests := []struct {
		name     string
		networks []Network
		expected []Network
	}{
		{
			name: "Active first",
			networks: []Network{
				{SSID: "A", Strength: 80},
				{SSID: "B", Strength: 30, IsActive: true},
			},
			expected: []Network{
				{SSID: "B", Strength: 30, IsActive: true},
				{SSID: "A", Strength: 80},
			},
		},
		{
			name: "Sort by strength",
			networks: []Network{
				{SSID: "Weak", Strength: 10},
				{SSID: "Strong", Strength: 90},
				{SSID: "Middle", Strength: 50},
			},
			expected: []Network{
				{SSID: "Strong", Strength: 90},
				{SSID: "Middle", Strength: 50},
				{SSID: "Weak", Strength: 10},
			},
		},
		{
			name: "Equal strength keeps SSID order",
			networks: []Network{
				{SSID: "B", Strength: 40},
				{SSID: "A", Strength: 40},
			},
			expected: []Network{
				{SSID: "A", Strength: 40},
				{SSID: "B", Strength: 40},
			},
		},
		{
			name: "Duplicate keeps first occurrence",
			networks: []Network{
				{SSID: "Dup", Strength: 20},
				{SSID: "Other", Strength: 50},
				{SSID: "Dup", Strength: 90},
			},
			expected: []Network{
				{SSID: "Other", Strength: 50},
				{SSID: "Dup", Strength: 20},
			},
		},
		{
			name: "Duplicate keeps active entry",
			networks: []Network{
				{SSID: "Dup", Strength: 90},
				{SSID: "Dup", Strength: 20, IsActive: true},
			},
			expected: []Network{
				{SSID: "Dup", Strength: 20, IsActive: true},
			},
		},
		{
			name:     "Empty",
			networks: []Network{},
			expected: []Network{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortNetworks(tt.networks)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SortNetworks() got = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSortNetworks_Properties(t *testing.T) {
	networks := []Network{
		{SSID: "c", Strength: 10},
		{SSID: "a", Strength: 70},
		{SSID: "b", Strength: 70, IsActive: true},
		{SSID: "a", Strength: 5, IsActive: true},
		{SSID: "c", Strength: 99},
		{SSID: "d", Strength: 70},
		{SSID: "b", Strength: 100},
	}

	got := SortNetworks(networks)

	seen := map[string]bool{}
	for _, n := range got {
		if seen[n.SSID] {
			t.Fatalf("duplicate SSID %q in %v", n.SSID, got)
		}
		seen[n.SSID] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 networks, got %d", len(seen))
	}

	for _, n := range got {
		if (n.SSID == "a" || n.SSID == "b") && !n.IsActive {
			t.Errorf("expected active entry to survive for %q", n.SSID)
		}
	}

	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if !prev.IsActive && cur.IsActive {
			t.Errorf("active %q sorted after inactive %q", cur.SSID, prev.SSID)
		}
		if !prev.IsActive && !cur.IsActive && prev.Strength < cur.Strength {
			t.Errorf("strength not descending: %q(%d) before %q(%d)", prev.SSID, prev.Strength, cur.SSID, cur.Strength)
		}
	}
}
