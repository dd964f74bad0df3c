// Package simplify reduces verbose compiler-generated STL type names
// to a short human-readable form.
//
// Fully-expanded template instantiation names drown the interesting
// part of a stack trace in allocator, comparator and trait arguments:
//
//	std::basic_string<char,std::char_traits<char>,std::allocator<char> >
//
// simplify rewrites such names in a single left-to-right pass, in
// place: built-in type spellings become fixed abbreviations ("unsigned
// int" -> "uint"), trait and namespace qualifiers are stripped, and
// allocator/comparator arguments - whose bracketed contents have
// unbounded nesting depth - are discarded with exact bracket matching.
//
// The transform never grows the text, which is what makes the in-place
// rewrite safe, and it is idempotent: simplifying already-simplified
// output changes nothing.
//
// The package is independent of the container machinery; the symbol
// formatter calls it on each type name before display.
package simplify
