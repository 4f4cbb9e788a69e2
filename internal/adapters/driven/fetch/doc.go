// Package fetch provides the HTTP implementation of driven.Fetcher.
package fetch
