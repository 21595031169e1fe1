// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the client-side idea list.

The list is only ever changed wholesale or one whole record at a time:

	s.Load(ideas)        // full replace after a list fetch
	s.Replace(id, rec)   // authoritative record from a vote response
	s.Prepend(rec)       // newly created idea, shown until the next Load

There is no field-level update. Replace on an unknown id is a no-op.
*/
package store
