// Package sched holds the execution strategy shared by every bulk kernel.
//
// There is one scheduling model: independent, stateless units fanned out over
// a fixed-size worker pool and joined once. Kernels are written once against
// Map/ForBlocks; Mode only changes how the units are iterated, so serial and
// parallel runs execute the same arithmetic in the same per-unit order.
//
// Only one axis of a call chain is ever parallel. The caller that owns the
// outer axis (references in emd.Bulk, queries in classify.ClosestBulk) runs
// its units through Map and invokes the inner kernels with Serial.
package sched
