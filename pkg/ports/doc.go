/*
Package ports defines the driven ports (interfaces) of the rule engine.

These interfaces decouple composition from external implementations, so the
shared merged-tree tier can live in memory, in Redis or on disk.

# Key Interfaces

  - DefinitionSource: reads the definition files of a mod.
  - TreeStore: stores encoded merged definition trees by digest.
  - DistributedLocker: serializes tree merges across processes sharing a TreeStore.
*/
package ports
