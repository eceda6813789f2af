// Package domain holds the round record and the pure rules that decide every
// round command.
//
// Nothing here reads a clock or touches storage. The engine loads the single
// round record, hands it to Decide together with the caller, the command and
// the clock reading, and applies the returned Decision atomically. A rejected
// command returns an error carrying one platform error code and no Decision,
// so the caller has nothing to partially apply.
package domain
