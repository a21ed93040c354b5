// Package dispatch simulates load distribution across weighted upstreams.
//
// Each request picks an upstream with a weighted.Sampler and calls it through
// retry.Execute. Transient upstream failures are retried with backoff, while
// a downed upstream fails the request at once. Run fans requests out in
// parallel and summarises where they went in a Report.
package dispatch
