/*
Package domain contains the core domain models of the tales narrative player.

It defines the story graph entities and the outcome record produced when a reader
completes a traversal. This package is kept pure and free of I/O, following the
Hexagonal Architecture used throughout the module.

# Key Entities

  - Node: A narrative beat (title, description) that either offers Options or ends the story.
  - Option: A labeled edge from one Node to another.
  - Graph: An immutable mapping of node IDs to Nodes with a distinguished start node.
  - Outcome: The record of a completed traversal (who played, which story, which ending).
*/
package domain
