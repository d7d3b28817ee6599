// Package cost prices language-model calls. [ModelCost] holds per-token
// rates in USD per million tokens and [ModelCost.Estimate] turns the token
// usage of one call into a dollar amount. [For] looks up the published
// prices of common models.
package cost
