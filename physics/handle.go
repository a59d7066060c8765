// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/google/uuid"

// BodyHandle is a stable, opaque, value-typed reference to a body owned by
// a World. It remains valid until the body is removed; operations against
// a removed body's handle report StaleHandle rather than panicking.
type BodyHandle uuid.UUID

// ConstraintHandle is the constraint equivalent of BodyHandle.
type ConstraintHandle uuid.UUID

func newBodyHandle() BodyHandle             { return BodyHandle(uuid.New()) }
func newConstraintHandle() ConstraintHandle { return ConstraintHandle(uuid.New()) }

// String renders the handle for logging and diagnostics.
func (h BodyHandle) String() string { return uuid.UUID(h).String() }

// String renders the handle for logging and diagnostics.
func (h ConstraintHandle) String() string { return uuid.UUID(h).String() }
