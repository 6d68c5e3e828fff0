// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package erp

import (
	"net/url"
	"strings"
)

// ShipmentFilter narrows shipment listings. Zero-value fields are
// omitted from the query entirely.
type ShipmentFilter struct {
	Status string // shipment status, e.g. SHIPPED
	FromID string // originating distribution center
	ToID   string // destination retailer
}

// Encode renders the filter as a Loopback where-clause query string,
// e.g. "filter[where][status]=SHIPPED&filter[where][toId]=R1".
//
// Predicates are emitted in a fixed order (status, fromId, toId) so the
// same filter always produces the same URL, and an empty filter produces
// an empty string with no dangling separators.
func (f ShipmentFilter) Encode() string {
	var parts []string
	for _, p := range []struct {
		field string
		value string
	}{
		{"status", f.Status},
		{"fromId", f.FromID},
		{"toId", f.ToID},
	} {
		if p.value == "" {
			continue
		}
		parts = append(parts, "filter[where]["+p.field+"]="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}

// IsZero reports whether no predicate is set.
func (f ShipmentFilter) IsZero() bool {
	return f == ShipmentFilter{}
}
