// Package cipher generates step-by-step execution traces for five classical
// ciphers: Scytale, Route (spiral), Columnar transposition, Bacon and a toy
// four-round Feistel network.
//
// Every generator is a pure function of its [Request]. It returns a [Trace]
// whose steps are immutable snapshots: grids and partial outputs are copied
// into each step, so replaying a trace never shows state from a later step.
//
// Insufficient input (empty text after normalization, a short keyword, a
// column count below two, a Bacon ciphertext whose length is not a multiple
// of five) is not an error. The generator returns an empty trace instead:
//
//	trace := cipher.Scytale{}.Generate(cipher.Request{Text: "HI", Key: "1"})
//	trace.Empty() // true
//
// Decrypted output has trailing filler characters ('X') stripped. This is a
// heuristic: plaintext that genuinely ends in 'X' loses those letters.
package cipher
