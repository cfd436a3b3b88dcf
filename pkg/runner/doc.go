/*
Package runner implements the reader-facing I/O of the tales player.

It acts as the bridge between the Navigator and the terminal: TextHandler presents
nodes and implements the Choice Prompter, re-prompting on invalid input until a
valid pick arrives or the input stream ends.

# Key Components

  - TextHandler: ports.Presenter and ports.Chooser over an io.Reader/io.Writer pair.
  - ContentRenderer: Optional transformation of node descriptions (e.g. markdown to ANSI).
  - SanitizeInput: Size, UTF-8 and control-character hygiene for raw input lines.

# Usage

	h := runner.NewTextHandler(os.Stdin, os.Stdout)
	nav := runtime.NewNavigator(runtime.WithPresenter(h))
	ending, err := nav.Traverse(ctx, graph, h)
*/
package runner
