// Package domain contains shared domain types used across the layer-sync
// sub-packages. Entity-specific types live in sub-packages (domain/layer,
// domain/syncgroup). This root package holds sentinel errors, validation
// types, and the Action contract used by host transactions.
package domain
