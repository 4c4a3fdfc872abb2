package calib

import (
	"reflect"
	"testing"
)

func TestApplyBatchConsistency(t *testing.T) {
	tr := Transform{
		Offset:   [3]float64{1, -2, 0.5},
		SoftIron: [3][3]float64{{0.9, 0.1, 0}, {0.1, 1.2, -0.05}, {0, -0.05, 0.8}},
	}
	all := distort(fibonacciSphere(40), rotated(0.1, 0.2, [3]float64{2, 3, 4}), Sample{1, 1, 1})
	before := append([]Sample(nil), all...)

	whole := Apply(all, tr)
	parts := append(Apply(all[:17], tr), Apply(all[17:], tr)...)
	if len(whole) != len(all) {
		t.Fatalf("len = %d, want %d", len(whole), len(all))
	}
	if !reflect.DeepEqual(whole, parts) {
		t.Error("Apply on sub-batches differs from Apply on the whole batch")
	}
	for i, s := range all {
		if whole[i] != tr.Correct(s) {
			t.Errorf("sample %d depends on more than its own input", i)
		}
	}
	if !reflect.DeepEqual(all, before) {
		t.Error("Apply mutated its input")
	}
}

func TestCorrect(t *testing.T) {
	tr := Transform{
		Offset:   [3]float64{1, 2, 3},
		SoftIron: [3][3]float64{{2, 0, 0}, {0, 1, 1}, {0, 0, 0.5}},
	}
	got := tr.Correct(Sample{2, 4, 7})
	want := Sample{2, 6, 2}
	if got != want {
		t.Errorf("Correct = %+v, want %+v", got, want)
	}
	if id := Identity().Correct(Sample{1, 2, 3}); id != (Sample{1, 2, 3}) {
		t.Errorf("Identity().Correct = %+v", id)
	}
	if len(Apply(nil, tr)) != 0 {
		t.Error("Apply(nil) not empty")
	}
}
