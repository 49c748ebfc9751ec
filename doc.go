// Package cat concatenates inputs to a writer, optionally numbering lines,
// marking line ends, squeezing blank lines and making tabs and non-printing
// bytes visible.
//
// The Engine scans each buffer once, byte by byte. Line numbers and the
// "previous line was blank" state live in a LineCounter shared by every
// buffer of a run, so numbering continues across files and does not depend
// on where a stream was split.
//
// Example:
//
//	eng := cat.NewEngine(os.Stdout, cat.NewFormatOptions(cat.WithNumber()), nil)
//	if err := eng.Transform([]byte("a\nb\n")); err != nil {
//		log.Fatal(err)
//	}
//	// Output:
//	//      1  a
//	//      2  b
//
// Concat drives an Engine over files, URLs and standard input in order.
package cat
