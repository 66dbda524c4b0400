// Package twisty models the move logic of a 3x3x3 twisty puzzle
// independently of any rendering.
//
// # Features
//
//   - Solved-state generation of the 27 pieces and their stickers
//   - Partitioning into the nine turnable layers (U D L R F B M E S)
//   - A precomputed table of all 18 quarter-turn moves
//   - Camera-relative notation remapping (heading bucket and flip state)
//   - A puzzle state machine gating moves while a turn or scramble runs
//   - Export and restore of the two persisted slots (state and config)
//
// # Quick Start
//
//	clock := sched.NewClock()
//	p := twisty.New(twisty.WithScheduler(clock))
//
//	p.PerformMove(0, twisty.R)
//	clock.RunUntilIdle()
//
//	p.PerformMove(90, twisty.F) // camera turned 90 degrees: F turns L
//	clock.RunUntilIdle()
//
//	fmt.Println("Moves:", p.MoveCount())
//	fmt.Println("Solved:", p.IsSolved())
//
// # Concurrency
//
// A Puzzle is driven from a single goroutine. Timed exits from the
// rotating state and every scramble step are scheduled on the Scheduler
// supplied with WithScheduler and run on the goroutine that advances it.
//
// # Notation
//
// The package provides one constant per notation:
//
//	twisty.R      // Right clockwise
//	twisty.RPrime // Right counter-clockwise
//	twisty.M      // Middle slice, turns like L
//	twisty.E      // Equator slice, turns like D
//	twisty.S      // Standing slice, turns like F
package twisty
