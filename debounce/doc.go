// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package debounce collapses bursts of events into a single call made once
// input has been quiet for a fixed window.
package debounce
