// Package mock provides test doubles for the ai interfaces.
//
// Each mock ships default deterministic behavior and exposes function fields
// for injecting custom behavior per test. Constructors return concrete types
// so tests can set the fields and assert on call counts.
package mock
