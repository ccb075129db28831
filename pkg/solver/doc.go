// Package solver implements capacity-constrained deferred acceptance between
// schools and students.
//
// Key Components:
//
//   - Problem: one instance (schools, students, unmatched pool) and its Solve loop
//   - Observer: hooks for counting advances, displacements and fallback lists
//   - Verify: post-solve check of capacity, ordering and stability
//
// Algorithm:
//
// Every student starts in the unmatched pool, in input order. Until the pool is
// empty, the most recently added student is popped and advanced to its next
// preferred school (see core.Student.Advance). If that admission leaves someone
// without a place, the displaced student (possibly the same one) is pushed back.
// Each advance moves one cursor forward and cursors never exceed the school
// count, so a well-formed instance terminates within students × schools steps.
// Solve stops with an UnsolvedStateError if that bound is ever reached with
// students still unmatched.
//
// Example usage:
//
//	problem, err := solver.NewProblem(schools, students)
//	if err != nil {
//	    return err
//	}
//	if err := problem.Solve(ctx); err != nil {
//	    return err
//	}
//	for _, school := range problem.Schools() {
//	    log.Info("roster", "school", school.Name(), "admitted", school.Len())
//	}
//
// When more than one stable matching exists, the last-in-first-out pool order
// decides which one is found. The same input always yields the same matching.
package solver
