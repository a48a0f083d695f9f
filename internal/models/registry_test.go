package models

import "testing"

func TestItemStatus(t *testing.T) {
	tests := []struct {
		name        string
		purchased   bool
		isGroupGift bool
		want        ItemStatus
	}{
		{"unpurchased single item", false, false, StatusAvailable},
		{"unpurchased group gift", false, true, StatusAvailable},
		{"claimed single item", true, false, StatusClaimed},
		{"funded group gift", true, true, StatusFullyFunded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &RegistryItem{Purchased: tt.purchased, IsGroupGift: tt.isGroupGift}
			if got := item.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
			// Derivation is pure: repeated calls agree.
			if again := item.Status(); again != tt.want {
				t.Errorf("repeated Status() = %q, want %q", again, tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	item := &RegistryItem{Price: 100, AmountContributed: 40}
	if got := item.Remaining(); got != 60 {
		t.Errorf("Remaining() = %v, want 60", got)
	}
}
