/*
Package dsl provides a fluent builder for story graphs.

It is mostly useful for tests and for embedding small stories in Go code. Stories
shipped with the player are data, see package catalog.

	b := dsl.New("S1")
	b.Add("S1").Title("Crossroads").Text("Two roads diverge.").
		Choice("Go left", "S2").
		Choice("Go right", "S3")
	b.Add("S2").Title("Left End").Ending()
	b.Add("S3").Title("Right End").Ending()

	graph, err := b.Build()
*/
package dsl
