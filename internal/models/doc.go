// Package models defines the core domain models for the wedding registry.
//
// # Models
//
//   - RegistryItem: a gift on the registry, either claimable outright or
//     fundable through group contributions
//   - Contributor: one successful contribution toward a group gift
//   - ItemStatus: presentation status derived from an item's funding state
//
// # Design Principles
//
//  1. **Server-authoritative state**: Purchased and AmountContributed are
//     only ever written inside the store's contribution transaction
//  2. **Two funding modes, two fields**: PurchaserName (non-group claim) and
//     Contributors (group funding) are parallel fields; in meaningful use an
//     item populates at most one of them
//  3. **Avoid circular references**: contributors carry no back-pointer to
//     their item
package models
