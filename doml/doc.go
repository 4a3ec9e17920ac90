// Package doml defines the Domain Language model: closed vocabularies of
// entity types, typed attributes, operations and relations, the five
// normative operators that bind obligations to them, and the semantic
// worlds that assert concrete instances against a definition.
//
// A DomainLanguage is built once through its builder methods and is never
// mutated after it is handed to a composition graph. Builder calls perform
// no validation; coherence checking is deferred to the Self-QC interaction
// scan and the closure check so that malformed definitions can be
// constructed and then flagged.
//
// UNKNOWN is a first-class value. An attribute explicitly set to
// doml.Unknown is observably different from an attribute that was never
// set, and neither is ever collapsed into false or absence.
package doml
