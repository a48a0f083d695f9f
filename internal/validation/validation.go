// Package validation checks the shape of incoming registry API payloads
// before any domain logic runs. The entry points accept unknown-shaped
// decoded JSON, check fields in a fixed order (first failure wins), and
// return a typed input on success. They never mutate their argument and
// never panic; failure is a plain error whose message is safe to show to
// the caller.
package validation

import (
	"errors"
	"math"
	"strings"
)

// ContributeInput is a validated contribution request.
type ContributeInput struct {
	ItemID string
	Name   string
	Amount float64
}

// AddItemInput is a validated item-creation request.
type AddItemInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Image       string
	VendorURL   string
	Quantity    int
	IsGroupGift bool
}

// ValidateContributeInput validates a decoded contribute payload.
// Check order: body shape, itemId, name, amount.
func ValidateContributeInput(input any) (*ContributeInput, error) {
	data, ok := input.(map[string]any)
	if !ok || data == nil {
		return nil, errors.New("Invalid request body.")
	}

	itemID, ok := ValidString(data["itemId"])
	if !ok {
		return nil, errors.New("Missing or invalid itemId.")
	}

	// The web client historically sent the field as purchaserName; accept
	// both spellings under one rule.
	name, ok := ValidString(data["name"])
	if !ok {
		name, ok = ValidString(data["purchaserName"])
	}
	if !ok {
		return nil, errors.New("Name is required.")
	}

	amount, ok := PositiveNumber(data["amount"])
	if !ok {
		return nil, errors.New("Contribution amount must be a positive number.")
	}

	return &ContributeInput{ItemID: itemID, Name: name, Amount: amount}, nil
}

// ValidateAddItemInput validates a decoded add-item payload.
// Check order: body shape, name, price, quantity, category.
func ValidateAddItemInput(input any) (*AddItemInput, error) {
	data, ok := input.(map[string]any)
	if !ok || data == nil {
		return nil, errors.New("Invalid request body.")
	}

	name, ok := ValidString(data["name"])
	if !ok {
		return nil, errors.New("Item name is required.")
	}

	price, ok := PositiveNumber(data["price"])
	if !ok {
		return nil, errors.New("Price must be a positive number.")
	}

	quantity, ok := PositiveInteger(data["quantity"])
	if !ok {
		return nil, errors.New("Quantity must be a positive integer.")
	}

	category, ok := ValidString(data["category"])
	if !ok {
		return nil, errors.New("Category is required.")
	}

	out := &AddItemInput{
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	}

	// Optional fields: description, image, vendorUrl, isGroupGift.
	if s, ok := ValidString(data["description"]); ok {
		out.Description = s
	}
	if s, ok := ValidString(data["image"]); ok {
		out.Image = s
	}
	if s, ok := ValidString(data["vendorUrl"]); ok {
		out.VendorURL = s
	}
	out.IsGroupGift = GroupGiftFlag(data["isGroupGift"])

	return out, nil
}

// GroupGiftFlag interprets the isGroupGift field, which arrives as a JSON
// bool from the API client or as "on" from HTML checkbox form posts.
func GroupGiftFlag(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "on"
	default:
		return false
	}
}

// ValidString reports whether v is a string that is non-empty after trimming,
// returning the untrimmed value.
func ValidString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// PositiveNumber reports whether v is a finite number greater than zero.
func PositiveNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// PositiveInteger reports whether v is a positive whole number.
func PositiveInteger(v any) (int, bool) {
	f, ok := PositiveNumber(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
