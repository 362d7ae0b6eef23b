package iteratable

import "testing"

func TestSetAddAndContains(t *testing.T) {
	S := NewSet(0)
	S.Add(1)
	S.Add(2)
	if S.Add(1) {
		t.Errorf("expected duplicate 1 to be rejected")
	}
	if S.Size() != 2 {
		t.Errorf("expected size to be 2, is %d", S.Size())
	}
	if !S.Contains(2) || S.Contains(3) {
		t.Errorf("membership broken: %v", S.Values())
	}
}

func TestSetIterationSeesGrowth(t *testing.T) {
	S := NewSet(4)
	S.Add(1)
	S.IterateOnce()
	cnt := 0
	for S.Next() {
		n := S.Item().(int)
		if n < 5 {
			S.Add(n + 1)
		}
		cnt++
	}
	if cnt != 5 {
		t.Errorf("expected iteration to visit 5 elements, visited %d", cnt)
	}
}

func TestSetEqualsIgnoresOrder(t *testing.T) {
	A := NewSet(0)
	B := NewSet(0)
	for _, x := range []string{"a", "b", "c"} {
		A.Add(x)
	}
	for _, x := range []string{"c", "a", "b"} {
		B.Add(x)
	}
	if !A.Equals(B) {
		t.Errorf("expected %v to equal %v", A.Values(), B.Values())
	}
	B.Add("d")
	if A.Equals(B) {
		t.Errorf("expected %v to differ from %v", A.Values(), B.Values())
	}
}

func TestSetDifferenceAndUnion(t *testing.T) {
	A := NewSet(0)
	B := NewSet(0)
	for _, x := range []int{1, 2, 3, 4} {
		A.Add(x)
	}
	B.Add(2)
	B.Add(4)
	D := A.Copy().Difference(B)
	if D.Size() != 2 || !D.Contains(1) || !D.Contains(3) {
		t.Errorf("expected difference to be {1,3}, is %v", D.Values())
	}
	if A.Size() != 4 {
		t.Errorf("copy must not alter original, is %v", A.Values())
	}
	D.Union(B)
	if !D.Equals(A) {
		t.Errorf("expected union to restore %v, is %v", A.Values(), D.Values())
	}
	if D.First() != 1 {
		t.Errorf("expected first element to be 1, is %v", D.First())
	}
}
