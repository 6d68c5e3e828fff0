// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package models defines the typed records exchanged with clients and the
// upstream ERP. Field names serialize to the ERP's camelCase wire shapes,
// so a record can be decoded from an upstream body and re-encoded for a
// client without translation.
//
// The gateway deliberately avoids re-validating upstream response bodies:
// most list/get operations pass the ERP payload through untouched (as
// json.RawMessage at the call sites). The structs here exist for the few
// responses the gateway shapes itself and for request-side validation.
package models

// User is a snapshot of an ERP user. The snapshot embedded in a session
// envelope is captured at login time and never re-fetched (trust-on-issue).
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Demo is a demo session grouping a set of generated users and retailers.
type Demo struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	GUID      string `json:"guid"`
	CreatedAt string `json:"createdAt,omitempty"`
	Users     []User `json:"users,omitempty"`
}

// Contact is a named point of contact for a location.
type Contact struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Address is a geocoded location.
type Address struct {
	ID        string  `json:"id,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Retailer is a store receiving shipments.
type Retailer struct {
	ID      string   `json:"id"`
	Contact *Contact `json:"contact,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// DistributionCenter is a warehouse originating shipments.
type DistributionCenter struct {
	ID      string   `json:"id"`
	Contact *Contact `json:"contact,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Shipment is a delivery from a distribution center (fromId) to a
// retailer (toId).
type Shipment struct {
	ID                     string     `json:"id"`
	Status                 string     `json:"status,omitempty"`
	CreatedAt              string     `json:"createdAt,omitempty"`
	UpdatedAt              string     `json:"updatedAt,omitempty"`
	DeliveredAt            string     `json:"deliveredAt,omitempty"`
	EstimatedTimeOfArrival string     `json:"estimatedTimeOfArrival,omitempty"`
	CurrentLocation        *Address   `json:"currentLocation,omitempty"`
	FromID                 string     `json:"fromId,omitempty"`
	ToID                   string     `json:"toId,omitempty"`
	Items                  []LineItem `json:"items,omitempty"`
}

// LineItem is a quantity of a product within a shipment.
type LineItem struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Inventory is the stock of a product at a location.
type Inventory struct {
	ID           string `json:"id"`
	Quantity     int    `json:"quantity"`
	ProductID    string `json:"productId"`
	LocationID   string `json:"locationId"`
	LocationType string `json:"locationType"`
}

// Product is an item that can be stocked and shipped.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SupplierID string `json:"supplierId,omitempty"`
}

// AuthSession pairs the opaque ERP session token with the user snapshot
// captured at login. It is the payload wrapped into a session envelope.
type AuthSession struct {
	LoopbackToken string `json:"loopback_token"`
	User          User   `json:"user"`
}

// ERPSession is the session record the ERP returns on login. ID is the
// opaque token the gateway forwards on subsequent upstream calls.
type ERPSession struct {
	ID      string `json:"id"`
	TTL     int64  `json:"ttl,omitempty"`
	Created string `json:"created,omitempty"`
	UserID  string `json:"userId,omitempty"`
}
