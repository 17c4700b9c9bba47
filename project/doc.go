// Package project estimates project duration and cost distributions by Monte Carlo simulation.
//
// A project is a Graph of Tasks. Every task has a triangular duration distribution and a daily
// cost rate; DependsOn lists the tasks that must finish before it can start. A Simulator draws
// one duration batch per task and pushes all draws through the graph at once.
//
// # Basic Usage
//
//	g, err := project.NewGraph([]project.Task{
//	    {ID: "design", Duration: triangular.MustNew(10, 20, 40), CostPerDay: 75},
//	    {ID: "build", Duration: triangular.MustNew(14, 28, 60), CostPerDay: 250, DependsOn: []string{"design"}},
//	})
//	if err != nil {
//	    return err
//	}
//
//	sim := project.NewSimulator(project.WithSeed(42))
//	res, err := sim.Run(ctx, g, 450, 1_000_000)
//	// res.Duration[i] and res.Cost[i] describe the same simulated project.
//
// # Evaluation
//
// For every draw i, a task starts when the last of its predecessors has finished (time 0 for a
// task without predecessors) and finishes after its own sampled duration. The project duration
// is the latest finish among the terminal tasks (all sinks unless WithTerminals names some).
// The project cost is the sum of each task's duration times its rate, plus the project duration
// times the overhead rate: overhead accrues with elapsed time, not with effort.
//
// # Determinism
//
// Each task draws from its own stream, derived from the run seed and the task ID. Given the same
// seed and graph, Run returns bit-identical batches regardless of worker count, chunk size or the
// order in which tasks were declared (cost sums follow declaration order, which fixes rounding).
//
// # Concurrency
//
// Sampling runs in parallel across tasks; graph evaluation runs in parallel across contiguous
// chunks of draws, each chunk walking the whole topological order. Workers write disjoint slots,
// so no locks are taken. A Graph is read-only once built and may be shared between goroutines.
//
// # Errors
//
//   - ErrInvalidArgument: non-positive simulation count, negative or non-finite rates, nil graph
//   - ErrInvalidParameters: a task's triangle is malformed (wrapped in a TaskError naming it)
//   - *GraphError: cycles (ErrCycle), unknown task references (ErrUnknownTask) and other
//     structural problems (ErrInvalidGraph)
//
// Every error is detected before any sampling starts.
package project
