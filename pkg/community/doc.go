// Package community partitions a citation graph into thematic communities.
//
// [Detect] runs a Louvain-style modularity optimizer: a local moving phase
// that greedily reassigns nodes to neighboring communities, followed by an
// aggregation phase that collapses each community into a weighted
// super-node. The two phases repeat until a level makes no move.
//
// # Determinism
//
// Nodes are visited in ascending index order (the graph's insertion order)
// at every level, and equal gains are resolved in favor of the lowest
// community number. Final community ids are dense (0..K-1) and ordered by
// the smallest node index they contain, so community 0 always contains
// node 0. The same graph built in the same order always yields the same
// partition.
//
// # Modularity
//
// [Modularity] scores any partition with
//
//	Q = Σ_c [ L_c/m − (tot_c / 2m)² ]
//
// where L_c is the number of edges inside community c and tot_c the sum of
// the degrees of its members. The detector never returns a partition that
// scores below [Singletons].
package community
