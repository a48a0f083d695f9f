package models

import "time"

// ItemStatus is the presentation status of a registry item.
type ItemStatus string

const (
	// StatusAvailable means the item can still be claimed or contributed to.
	StatusAvailable ItemStatus = "available"
	// StatusClaimed means a non-group item was claimed by a single guest.
	StatusClaimed ItemStatus = "claimed"
	// StatusFullyFunded means a group gift reached its full price.
	StatusFullyFunded ItemStatus = "fullyFunded"
)

// Contributor records one successful contribution toward a group gift.
// The date is assigned by the server inside the contribution transaction.
type Contributor struct {
	// Name is the contributor's display name.
	Name string `json:"name"`

	// Amount is how much this contribution added, in the registry currency.
	Amount float64 `json:"amount"`

	// Date is when the contribution transaction committed.
	Date time.Time `json:"date"`
}

// RegistryItem is a gift on the wedding registry.
type RegistryItem struct {
	// ID is the unique identifier for the item (UUID format), immutable.
	ID string `json:"id"`

	// Name is the display name of the item.
	Name string `json:"name"`

	// Description is a short display description.
	Description string `json:"description"`

	// Category groups items for filtering (e.g. "Kitchen", "Honeymoon").
	Category string `json:"category"`

	// Price is the total cost of the item. Never negative.
	Price float64 `json:"price"`

	// Image is the display image URL.
	Image string `json:"image"`

	// VendorURL optionally links to the product page it was scraped from.
	VendorURL string `json:"vendorUrl"`

	// Quantity is the desired unit count. Always positive.
	Quantity int `json:"quantity"`

	// IsGroupGift selects the funding mode for the item's lifetime:
	// false means a single guest claims the whole item, true means guests
	// contribute amounts until the price is reached.
	IsGroupGift bool `json:"isGroupGift"`

	// Purchased is true once the item is no longer contributable: fully
	// claimed (non-group) or fully funded (group).
	Purchased bool `json:"purchased"`

	// PurchaserName is set only when a non-group item is claimed.
	PurchaserName string `json:"purchaserName"`

	// AmountContributed is the running total funded toward Price. For a
	// non-group item it jumps straight to Price on claim. Invariant:
	// 0 <= AmountContributed <= Price.
	AmountContributed float64 `json:"amountContributed"`

	// Contributors holds one entry per successful contribution transaction
	// for a group item, in commit order. Append-only.
	Contributors []Contributor `json:"contributors"`

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64 `json:"createdAt"`
}

// Status derives the presentation status from the (Purchased, IsGroupGift)
// pair. Pure and total: every combination maps to exactly one status.
func (i *RegistryItem) Status() ItemStatus {
	if !i.Purchased {
		return StatusAvailable
	}
	if i.IsGroupGift {
		return StatusFullyFunded
	}
	return StatusClaimed
}

// Remaining is how much funding the item still needs.
func (i *RegistryItem) Remaining() float64 {
	return i.Price - i.AmountContributed
}
