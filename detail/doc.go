// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package detail holds the expanded single-idea view state: either closed
// or open on exactly one idea id.
package detail
