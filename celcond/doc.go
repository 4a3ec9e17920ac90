// Package celcond compiles CEL expressions into doml conditions and
// predicates. Expressions see a single variable, "world", holding the
// world's element and relation assertions as plain maps; attribute
// values carry the literal string "UNKNOWN" for explicit gaps, so an
// expression can distinguish a declared unknown from an absent key.
package celcond
