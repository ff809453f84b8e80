// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the session, the sync dispatcher, the player profile record and the
// background refetch job into a single process lifecycle driven by line
// commands read from the terminal.
package client
