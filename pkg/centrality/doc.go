// Package centrality scores nodes by betweenness and picks one
// representative per community.
//
// [Betweenness] implements Brandes' algorithm for unweighted undirected
// graphs: one BFS per source followed by dependency back-propagation, in
// O(V·E). Each unordered pair (s, t) is counted once, so raw scores lie in
// [0, (V-1)(V-2)/2]. Raw scores are the default; set Options.Normalized to
// scale them into [0, 1].
//
// [Rank] orders the members of a community by ascending score, keeping
// membership order among equal scores. The last member of the ranking is
// the community's representative, so on a tie the later member wins.
package centrality
