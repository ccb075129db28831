// Package core provides the entities of a matching instance and the per-entity
// steps of deferred acceptance.
//
//   - School: a named weight vector with a fixed admission capacity and a roster
//     kept in non-increasing order of affinity rating
//   - Student: a named score vector with an ordered preference list and a cursor
//     into it
//   - Rating: the affinity between one school and one student
//
// A school admits or bumps through School.Admit; a student moves on to its next
// choice through Student.Advance. The fixed-point loop that drives both lives in
// the solver package.
//
// Example usage:
//
//	u0 := core.NewSchool("U0", []float64{1, 0, 0}, 2)
//	u1 := core.NewSchool("U1", []float64{0, 1, 0}, 2)
//	schools := []*core.School{u0, u1}
//
//	s0 := core.NewStudent("S0", []float64{5, 1, 0}, []*core.School{u0, u1})
//	displaced, err := s0.Advance(ctx, schools)
//
// The package is designed to be:
//   - Deterministic: the same inputs in the same order give the same rosters
//   - Single-threaded: rosters and cursors are not safe for concurrent mutation
package core
