// Package graph provides the undirected citation graph and its serialization types.
//
// # Overview
//
// A [Graph] is a simple undirected graph over opaque node identities (article
// titles). Identities are mapped to dense integer indices in insertion order;
// every algorithm in citegraph works on those indices and only the emitters
// turn them back into strings.
//
// Each node carries a caption ([Node.Label], typically a \cite{...} reference)
// and the annotations the pipeline stages fill in: community id, betweenness
// centrality, representative flag and 2-D position.
//
// # Building a Graph
//
//	g := graph.New()
//	_ = g.AddNode("A Survey of Location Privacy", `\cite{smith_survey_2019}`)
//	_ = g.AddNode("Inferring Home Locations", `\cite{doe_inferring_2017}`)
//	_ = g.AddEdge("A Survey of Location Privacy", "Inferring Home Locations")
//
// [Graph.AddNode] is idempotent: a second call with the same id is ignored.
// [Graph.AddEdge] rejects self-loops with an InvalidEdgeError and silently
// drops edges whose endpoints are not nodes, mirroring upstream filtering by
// a known-citations set. Duplicate unordered pairs are ignored.
//
// # Facts
//
// The input contract of the pipeline is a list of admitted nodes and admitted
// edges, serialized as JSON:
//
//	{
//	  "nodes": [{"id": "a", "label": "\\cite{a_x_2019}"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Use [ReadFactsFile] and [FromFacts] to build a graph. [Filter] applies the
// admission rule (exact or normalized title matching, exclusion list)
// symmetrically to nodes and both edge endpoints; [Sanitize] rewrites
// identities into markup-safe tokens.
//
// # Layouts
//
// [Layout] is the serialized form of an annotated graph. It is used for the
// "json" output format and as the cache payload of the pipeline.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. A graph is owned by one
// pipeline invocation from construction to emission.
package graph
