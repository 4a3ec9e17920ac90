// Package service runs the validation service: it loads a domain-language
// definition, self-validates it, and answers world validation requests
// over NATS. The active composition graph is swapped atomically on
// reload, so in-flight requests always see a complete, self-consistent
// definition; a definition that fails self-validation never becomes
// active.
package service
