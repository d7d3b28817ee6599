// Package campaign defines the canonical record produced for a campaign
// guideline, the enumerations it is validated against, and the failure
// taxonomy shared by the parsing and orchestration layers.
//
// A [CampaignAnalysis] is built once per analysis and never mutated after it
// is returned. Optional scalar fields are pointers so that JSON null and
// "absent" round-trip faithfully.
package campaign
