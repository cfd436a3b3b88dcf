/*
Package ports defines the driven ports (interfaces) of the tales engine.

These interfaces decouple the traversal core from its collaborators, so the same
Navigator runs against a terminal, a scripted test double, or any outcome store.

# Key Interfaces

  - Chooser: Obtains a validated 1-based pick from the reader.
  - Presenter: Shows a node to the reader.
  - Recorder: Appends completed outcomes to a durable log and reads back recent ones.
  - GraphLoader: Produces a story Graph from some content source (YAML, Loam, ...).
*/
package ports
