// Package repair implements the textual pre-parse passes of the formatter:
// comment stripping, trailing-comma stripping and bare-key quoting.
//
// The passes are regular-expression rewrites, not a tokenizer. They do not
// know about string literals, so `//`, `/* */` or `,word:` inside a string
// value are rewritten as well. Every pass records the byte spans it replaced
// so that positions in the repaired text can be mapped back to the input.
package repair
