// Package utils provides shared low-level helpers: synchronous JSON POST and
// bounded GET requests against upstream services, rune-safe string
// truncation for log previews, and generic pointer helpers.
//
// Key entry points: [DoPostSync] for JSON round-trips with the language
// model, [DoGet] for guideline fetches, and [Ptr] for optional fields.
package utils
