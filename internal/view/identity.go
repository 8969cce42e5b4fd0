// Package view derives the API-facing view model (tokens, channels,
// cross-channel aggregates) from raw sighting documents. Nothing in this
// package touches the store; every function is a pure derivation over
// documents handed to it.
package view

import (
	"math/rand/v2"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const randomIDBound = 1_000_000

// SightingID derives the numeric surrogate id for a sighting from its
// document identifier: the trailing 8 hex characters parsed base-16. A
// malformed or zero identifier falls back to a random id below one million,
// so such a sighting's id differs between consecutive reads. Never fails.
func SightingID(id bson.ObjectID) int64 {
	hex := id.Hex()
	if len(hex) < 8 {
		return rand.Int64N(randomIDBound)
	}

	v, err := strconv.ParseUint(hex[len(hex)-8:], 16, 64)
	if err != nil || v == 0 {
		return rand.Int64N(randomIDBound)
	}
	return int64(v)
}
