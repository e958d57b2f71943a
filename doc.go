// Package serp is a resilient client for the SerpAPI search endpoint.
//
// It provides a validated, immutable query model built through a fluent
// value-semantics builder, an executor that retries transient failures
// with capped exponential backoff (honoring Retry-After hints), and a
// lazy pagination stream with rate control and early termination.
//
//	client, err := serp.New(serp.Config{APIKey: "..."}, logger)
//	if err != nil {
//		...
//	}
//
//	query, err := serp.NewQuery("rust tutorials").
//		Language("en").
//		Country("us").
//		Limit(20).
//		Build()
//	if err != nil {
//		...
//	}
//
//	results, err := client.Search(ctx, query)
//
// All blocking operations take a context; cancelling it aborts pending
// transport calls, retry delays and inter-page waits promptly.
package serp
