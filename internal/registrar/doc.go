// Package registrar registers a folder of nanopb schemas with the build
// configuration. It appends an include filter for the folder's *.proto files
// and the generator flag that fails the build on unmatched schemas. The glob
// itself is resolved later by the code generator.
package registrar
