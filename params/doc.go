// SPDX-License-Identifier: MIT

// Package params implements the typed solver-configuration registry.
//
// Parameters are keyed by three closed enumerations — DoubleParam, IntParam
// and StringParam — each member carrying a documented default and a
// validator. A default may itself be "unset" (nil), which is a meaningful
// value distinct from "invalid". Setting a parameter to its default removes
// the override, so a Parameters that has only ever been set to defaults
// stays equal to a freshly constructed one.
//
// Two Parameters are equal iff every recognized parameter resolves to the
// same effective value. CopyFrom iterates the full closed set of recognized
// parameters, so copying never leaves stale overrides behind.
//
// Defaults live in an immutable table initialized eagerly at package load:
// there is no lazy-initialization state to race on.
package params
