// Package analyzer turns a campaign guideline and one language-model
// response into a finished [campaign.CampaignAnalysis].
//
// [Reconcile] is the pure pipeline. It parses the response (repairing it when
// needed), normalizes every field, then fills points, platform and phone from
// the guideline text wherever the model left them empty. Model values always
// take precedence over values found by the regex extractors, and each filled
// field is reported as a [Correction].
//
// [Analyzer] wraps Reconcile with the request boundary: input validation,
// the daily quota gate, the single model call and a response cache keyed by
// a hash of the guideline and platform list.
//
// Example:
//
//	c, _ := client.New(openai.New(),
//	    client.WithModel("gpt-4o-mini"),
//	    client.WithSystemPrompt(analyzer.SystemPrompt()),
//	    client.WithJSONMode(),
//	)
//	a, _ := analyzer.New(c, analyzer.WithQuota(quota.NewMemoryGate(20)))
//	result, err := a.Analyze(ctx, analyzer.Request{Guideline: text, UserID: "u1"})
package analyzer
