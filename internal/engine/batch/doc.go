// Package batch chunks object sequences into bounded-size batches.
//
// Mesh-attach operations grow the undo buffer and peak memory with every
// object they touch, so the merger never hands the whole of a material
// group to the scene at once. This package owns the chunked iteration and
// the progress bookkeeping; the batch size itself is chosen by the
// merger's adaptive policy.
package batch
