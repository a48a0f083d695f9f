package validation

import (
	"math"
	"testing"
)

func TestValidateContributeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr string
	}{
		{"nil input", nil, "Invalid request body."},
		{"non-object input", "hello", "Invalid request body."},
		{"missing itemId", map[string]any{"name": "A", "amount": 10.0}, "Missing or invalid itemId."},
		{"blank itemId", map[string]any{"itemId": "   ", "name": "A", "amount": 10.0}, "Missing or invalid itemId."},
		{"missing name", map[string]any{"itemId": "1", "amount": 10.0}, "Name is required."},
		{"empty name", map[string]any{"itemId": "1", "name": "", "amount": 10.0}, "Name is required."},
		{"missing amount", map[string]any{"itemId": "1", "name": "A"}, "Contribution amount must be a positive number."},
		{"negative amount", map[string]any{"itemId": "1", "name": "A", "amount": -5.0}, "Contribution amount must be a positive number."},
		{"zero amount", map[string]any{"itemId": "1", "name": "A", "amount": 0.0}, "Contribution amount must be a positive number."},
		{"string amount", map[string]any{"itemId": "1", "name": "A", "amount": "10"}, "Contribution amount must be a positive number."},
		{"infinite amount", map[string]any{"itemId": "1", "name": "A", "amount": math.Inf(1)}, "Contribution amount must be a positive number."},
		{"valid", map[string]any{"itemId": "1", "name": "A", "amount": 25.5}, ""},
		{"valid with purchaserName", map[string]any{"itemId": "1", "purchaserName": "A", "amount": 25.5}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateContributeInput(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if got.ItemID != "1" || got.Name != "A" || got.Amount != 25.5 {
					t.Errorf("unexpected parsed input: %+v", got)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got success", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateContributeInput_FirstFailureWins(t *testing.T) {
	// Several fields are invalid; the amount error must not mask the
	// earlier name rule, nor vice versa.
	_, err := ValidateContributeInput(map[string]any{"itemId": "1", "amount": -5.0, "name": "A"})
	if err == nil || err.Error() != "Contribution amount must be a positive number." {
		t.Errorf("expected the amount error, got %v", err)
	}

	_, err = ValidateContributeInput(map[string]any{"itemId": "1", "amount": -5.0})
	if err == nil || err.Error() != "Name is required." {
		t.Errorf("expected the name error to win over amount, got %v", err)
	}
}

func TestValidateAddItemInput(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"name":     "Stand Mixer",
			"price":    450.0,
			"quantity": 1.0,
			"category": "Kitchen",
		}
	}

	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		wantErr string
	}{
		{"valid", func(m map[string]any) {}, ""},
		{"missing name", func(m map[string]any) { delete(m, "name") }, "Item name is required."},
		{"zero price", func(m map[string]any) { m["price"] = 0.0 }, "Price must be a positive number."},
		{"string price", func(m map[string]any) { m["price"] = "450" }, "Price must be a positive number."},
		{"fractional quantity", func(m map[string]any) { m["quantity"] = 1.5 }, "Quantity must be a positive integer."},
		{"negative quantity", func(m map[string]any) { m["quantity"] = -1.0 }, "Quantity must be a positive integer."},
		{"missing category", func(m map[string]any) { delete(m, "category") }, "Category is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(m)
			got, err := ValidateAddItemInput(m)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if got.Name != "Stand Mixer" || got.Price != 450 || got.Quantity != 1 || got.Category != "Kitchen" {
					t.Errorf("unexpected parsed input: %+v", got)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	t.Run("optional fields carried through", func(t *testing.T) {
		m := valid()
		m["description"] = "600W tilt-head"
		m["vendorUrl"] = "https://example.com/mixer"
		m["isGroupGift"] = true
		got, err := ValidateAddItemInput(m)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got.Description != "600W tilt-head" || got.VendorURL != "https://example.com/mixer" || !got.IsGroupGift {
			t.Errorf("optional fields lost: %+v", got)
		}
	})

	t.Run("checkbox style group gift flag", func(t *testing.T) {
		if !GroupGiftFlag("on") || GroupGiftFlag("off") || GroupGiftFlag(nil) {
			t.Error("GroupGiftFlag mishandles checkbox values")
		}
	})
}

func TestValidationDoesNotMutateInput(t *testing.T) {
	m := map[string]any{"itemId": "1", "name": "A", "amount": 10.0}
	if _, err := ValidateContributeInput(m); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(m) != 3 || m["itemId"] != "1" || m["name"] != "A" || m["amount"] != 10.0 {
		t.Errorf("input mutated: %v", m)
	}
}
