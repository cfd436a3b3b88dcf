/*
Package tales is a text-based branching narrative player.

A story is a directed graph of nodes. Each node has a title, a description and
either a numbered list of options leading to other nodes or an ending. The
player presents nodes, reads the reader's choice and follows edges until an
ending is reached; each completed traversal is appended to an outcome log.

# Architecture

  - pkg/domain: Node, Option, Graph and Outcome, plus the error taxonomy.
  - pkg/catalog: the ordered set of stories, with three built-in stories embedded as YAML.
  - internal/runtime: the Navigator state machine.
  - pkg/runner: terminal presentation and the bounded choice prompt.
  - pkg/adapters: content loaders (YAML/JSON, Loam markdown) and outcome logs (file, sqlite, redis, memory).

# Usage

	eng, err := tales.New(tales.WithPresenter(handler))
	if err != nil {
		log.Fatal(err)
	}
	outcome, err := eng.Play(ctx, 1, "Ada", handler)

Stories are data. Additional stories can be loaded from a directory of YAML
files or Loam markdown repositories with catalog.WithDir.
*/
package tales
