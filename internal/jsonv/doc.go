// Package jsonv is an order-preserving JSON value model with a strict parser,
// a key sorter and a serializer.
//
// Parse errors carry byte offsets and V8-style messages such as
// `Unexpected token "}" (0x7D)`; callers map offsets to line and column.
package jsonv
