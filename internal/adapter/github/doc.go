// Package github implements the search client and diff fetcher against
// the GitHub REST API.
//
// Searches paginate until the reported total is collected. Diff fetches
// are best effort: the caller treats a failed fetch as an absent diff and
// moves on with the rest of the batch.
package github
