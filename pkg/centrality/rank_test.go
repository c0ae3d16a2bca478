package centrality

import (
	"slices"
	"testing"

	"github.com/isplab/citegraph/pkg/community"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name    string
		members []int
		scores  []float64
		want    []int
	}{
		{"Ascending", []int{0, 1, 2}, []float64{3, 1, 2}, []int{1, 2, 0}},
		{"TiesKeepMembershipOrder", []int{2, 0, 1}, []float64{1, 1, 1}, []int{2, 0, 1}},
		{"TieAtTopLaterWins", []int{0, 1, 2}, []float64{5, 0, 5}, []int{1, 0, 2}},
		{"Single", []int{4}, []float64{0, 0, 0, 0, 9}, []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.members, tt.scores)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Rank = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankDoesNotMutate(t *testing.T) {
	members := []int{0, 1}
	_ = Rank(members, []float64{2, 1})
	if !slices.Equal(members, []int{0, 1}) {
		t.Errorf("members mutated: %v", members)
	}
}

func TestRepresentatives(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}, {"d", "e"}, {"e", "f"}, {"d", "f"}},
	)
	res, err := community.Detect(g, community.Options{})
	if err != nil {
		t.Fatal(err)
	}
	scores, err := Betweenness(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	Representatives(g, res, scores)

	if res.Communities[0].Representative != 2 || res.Communities[1].Representative != 3 {
		t.Errorf("representatives = %d,%d, want 2,3",
			res.Communities[0].Representative, res.Communities[1].Representative)
	}
	for v := 0; v < g.NodeCount(); v++ {
		n := g.Node(v)
		wantRep := v == 2 || v == 3
		if n.Representative != wantRep {
			t.Errorf("node %s Representative = %v", n.ID, n.Representative)
		}
		if n.Centrality != scores[v] {
			t.Errorf("node %s Centrality = %v, want %v", n.ID, n.Centrality, scores[v])
		}
	}
}

func TestRepresentativesTieLaterMemberWins(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	res, err := community.Detect(g, community.Options{})
	if err != nil {
		t.Fatal(err)
	}
	scores, _ := Betweenness(g, Options{})
	Representatives(g, res, scores)

	if len(res.Communities) != 1 || res.Communities[0].Representative != 1 {
		t.Errorf("communities = %+v, want single community represented by node 1", res.Communities)
	}
}
