// Package guideline turns the text an operator pastes or links into the
// plain guideline text the analyzer works on.
//
// Campaign pages are usually copied straight out of a browser or an admin
// console, so the text often arrives as an HTML fragment. [Prepare] detects
// markup and converts it to Markdown with html-to-markdown; plain text passes
// through untouched. [Fetch] downloads a guideline page and prepares it the
// same way.
//
// Example:
//
//	text, err := guideline.Fetch(ctx, "example.com/campaign/123")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := a.Analyze(ctx, analyzer.Request{Guideline: text})
package guideline
