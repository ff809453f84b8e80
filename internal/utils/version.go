// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// StorageVersion derives the version token of a stored value. Equal values
// always produce equal versions, so rewriting an unchanged value keeps the
// version stable.
//
// Example usage:
//
//	version := utils.StorageVersion(`{"score":10}`)
func StorageVersion(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
