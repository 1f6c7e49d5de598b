// Package powerbi implements the dataset refresh call against the Power BI REST API.
//
// Each refresh is a POST with an empty body to
// {api_url}/datasets/{id}/refreshes, authorised with the bearer token
// handed in by the dispatcher. Requests are paced by a token-bucket
// limiter; responses are never retried.
package powerbi
