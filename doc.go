// Package matcli is a schema-driven command-line front end to a numeric
// matrix library: one invocation maps a dotted function name and textual
// arguments onto a typed library call and prints the result as delimited
// text.
//
// 🚀 What is matcli?
//
//	A thin, predictable bridge between shell pipelines and dense linear
//	algebra:
//		• Coercers: tokens become ints, floats, lists, matrices — with a
//		  literal → file → URL fallback chain for matrix arguments
//		• Slice evaluator: ROWS[,COLS] specs with negative indices, open
//		  bounds and step, applied to any matrix argument
//		• Schema table: every supported function declared as data — arity,
//		  keyword vocabulary, calling convention
//		• Dispatcher: static registry, panic capture, in-place mutations
//		  rendered via the void-return rule
//		• Renderer: delimited rows, flatten mode, transposition, headers
//		  and a polynomial pretty-printer
//
// Everything is organized under focused subpackages:
//
//	coerce/    — token → typed value conversion
//	slicespec/ — row/column slice grammar and application
//	schema/    — call schemas and the argument resolver
//	dispatch/  — registry, calling conventions, failure capture
//	kernels/   — elementwise and axis-reduction numeric loops
//	funcs/     — the function table: matrix, linalg, poly, random, stats, fft
//	render/    — result → delimited text
//	cli/       — flags, config file, help, version, exit codes
//	cmd/       — the matcli binary
//
// Quick shell example:
//
//	$ matcli matrix.add "1,2;3,4" "10,20;30,40"
//	11,22
//	33,44
//	$ matcli --flatten linalg.inv "4,7;2,6"
//	0.6,-0.7;-0.2,0.4
//	$ matcli --poly poly.polyder "2,-3,1"
//	-3+2x
//
//	go get github.com/katalvlaran/matcli/cmd/matcli
package matcli
