// Package engine contains the tick driver and simulation logic.
// This is the heartbeat of PixelSoft Tycoon.
//
// ARCHITECTURAL RULE: sub-systems never own state. The GameState aggregate
// is passed explicitly into every system call, and the Engine invokes the
// systems in a fixed order within one tick. Every money or reputation
// mutation goes through the Ledger so it lands in the audit log.
package engine
