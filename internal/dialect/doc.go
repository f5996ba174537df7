// Package dialect tells which flavour of JSON a document is written in:
// strict RFC 8259 JSON, JWCC (JSON with commas and comments, as accepted by
// github.com/tailscale/hujson), relaxed input that the formatter's repairs
// can turn into JSON, or none of these.
//
// Classification is informational; it never changes what Format does.
package dialect
