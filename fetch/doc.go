// SPDX-License-Identifier: EPL-2.0

// Package fetch retrieves resources by URI.
//
// HTTPFetcher covers http and https through a retrying client, FileFetcher
// reads local paths and file URLs, and DataFetcher decodes inline data
// URIs. Mux dispatches on the URI scheme; a URI without a scheme is a file
// path.
package fetch
