// Package evolve exposes the mutation and scoring surface for evolutionary
// search over filter Transformers.
//
// The search loop itself is deliberately absent. What lives here is the
// machinery any loop needs: Genome flattens every kernel cell and channel
// weight of a Transformer into one vector and writes a vector back in the
// same fixed order, Fitness scores a candidate image against a reference,
// and the metric functions (MSE, MAE, PSNR, ChannelCorrelation) give a
// loop its raw distance signals. A trainer would snapshot a genome,
// perturb it, apply it, transform a probe image, score the result, and
// keep or revert the change.
package evolve
