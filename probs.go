package heredity

// Probs holds the conditional probability tables that define the trait
// network: the unconditional prior over gene copy counts for founders, the
// probability of expressing the trait given each copy count, and the
// per-transmission mutation rate. It is passed by value into the engine so
// callers can run inference under alternative tables without touching any
// global state.
type Probs struct {
	// Gene is the unconditional prior over carrying 0, 1, or 2 copies,
	// indexed by copy count.
	Gene [3]float64

	// Trait is P(trait expression | copy count), indexed first by copy
	// count and then by expression (0 = does not have the trait, 1 = has
	// the trait). Each inner pair sums to 1.
	Trait [3][2]float64

	// Mutation is the probability that a transmitted copy flips state
	// during inheritance.
	Mutation float64
}

// DefaultProbs carries the standard population constants for the network.
var DefaultProbs = Probs{
	Gene: [3]float64{0.96, 0.03, 0.01},
	Trait: [3][2]float64{
		{0.99, 0.01}, // no copies
		{0.44, 0.56}, // one copy
		{0.35, 0.65}, // two copies
	},
	Mutation: 0.01,
}
