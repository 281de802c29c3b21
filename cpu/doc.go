// Package cpu implements the balanced ternary processor and its assembler.
//
// The processor is a single cycle RISC datapath over 27 trit words. Each
// Cycle fetches the word at the program counter, decodes it into an
// Instruction and its ControlSignals, and executes it against the
// register file, the arithmetic unit and the address space.
//
// Nothing in the datapath fails. Unknown opcodes execute as Nop, writes to
// r0 are discarded, unmapped memory and unwritten registers read as zero,
// and values too wide for their field wrap by balanced ternary reduction.
//
// The assembler provides a small assembly language for the instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
