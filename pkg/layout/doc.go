// Package layout assigns 2-D coordinates to graph nodes.
//
// [KamadaKawai] minimizes the Kamada-Kawai energy
//
//	Σ_{i<j} w_ij · (‖p_i − p_j‖ − d_ij)²,  w_ij = d_ij⁻²
//
// where d_ij is the shortest-path distance, using localized stress
// majorization: every sweep moves each node, in index order, to the
// weighted average that minimizes its share of the stress with all other
// nodes fixed. Each sweep never increases the stress.
//
// The initial placement is the deterministic circle produced by [Circular],
// so the same graph built in the same order always gets the same
// coordinates. Pairs in different components are kept apart with a finite
// fallback distance. The result is centered on the origin and scaled so the
// largest absolute coordinate equals Options.Scale.
package layout
