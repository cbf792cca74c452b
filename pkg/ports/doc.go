/*
Package ports defines the driven ports (interfaces) for the bodygen core.

These interfaces decouple the pure pipeline from caches and asset storage, so the
same validator and applier run against an in-process map or a shared Redis.

# Key Interfaces

  - TriCache: stores decoded TRI files keyed by content hash.
  - PositionSource: loads a base mesh as a flat position buffer.
  - PositionSink: writes a morphed position buffer back out.
*/
package ports
