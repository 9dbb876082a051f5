package pcomb

import "testing"

func TestValue_Leaves_WalksInOrder(t *testing.T) {
	v := &Value{
		Kind: KindSeq,
		Tag:  SeqTag,
		Children: []*Value{
			{Kind: KindLeaf, Leaf: "a"},
			{Kind: KindSeq, Tag: SeqTag, Children: []*Value{
				{Kind: KindLeaf, Leaf: "b"},
				{Kind: KindLeaf, Leaf: "c"},
			}},
		},
	}

	var got []string
	for l := range v.Leaves() {
		got = append(got, l)
	}

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Leaves() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Leaves() = %v, want %v", got, want)
		}
	}
}

func TestValue_Leaves_StopsEarlyOnFalseYield(t *testing.T) {
	v := &Value{Kind: KindSeq, Tag: SeqTag, Children: []*Value{
		{Kind: KindLeaf, Leaf: "a"},
		{Kind: KindLeaf, Leaf: "b"},
	}}

	var got []string
	for l := range v.Leaves() {
		got = append(got, l)

		break
	}

	if len(got) != 1 || got[0] != "a" {
		t.Errorf("early-terminated Leaves() = %v, want [\"a\"]", got)
	}
}

func TestValueEqual_StructuralNotPointer(t *testing.T) {
	a := &Value{Kind: KindLeaf, Leaf: "x"}
	b := &Value{Kind: KindLeaf, Leaf: "x"}

	if !valueEqual(a, b) {
		t.Error("structurally identical values should compare equal")
	}

	c := &Value{Kind: KindLeaf, Leaf: "y"}
	if valueEqual(a, c) {
		t.Error("structurally different leaves should not compare equal")
	}
}

func TestValueEqual_DistinguishesTags(t *testing.T) {
	a := &Value{Kind: KindReduced, Tag: Tag("add")}
	b := &Value{Kind: KindReduced, Tag: Tag("sub")}

	if valueEqual(a, b) {
		t.Error("values with different tags should not compare equal")
	}
}

func TestAction_ZeroValueIsZero(t *testing.T) {
	var a Action

	if !a.IsZero() {
		t.Error("zero-value Action should report IsZero")
	}

	if Tag("x").IsZero() {
		t.Error("Tag(\"x\") should not be zero")
	}
}
