// Package doml defines the graph vocabulary for domain-language
// validation reports. Predicates follow the three-level dotted
// convention (domain.category.attribute) and are registered with the
// semstreams vocabulary registry at init, so any consumer of the graph
// can resolve report triples to typed, documented terms.
package doml
