package logging

import "testing"

func TestProgressSamplerDefaults(t *testing.T) {
	if s := NewProgressSampler(0); s.bucketSize != 10 {
		t.Fatalf("bucketSize = %v, want 10", s.bucketSize)
	}
	var nilSampler *ProgressSampler
	if !nilSampler.ShouldLog(42, "downloading") {
		t.Fatal("nil sampler should always log")
	}
	nilSampler.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	steps := []struct {
		percent float64
		status  string
		want    bool
	}{
		{0, "downloading", true},
		{4, "downloading", false},
		{10, "downloading", true},
		{19.9, "downloading", false},
		{55, "downloading", true},
		{100, "downloading", true},
		{130, "downloading", false},
		{100, "finished", true},
		{-1, "finished", false},
	}
	for i, step := range steps {
		if got := s.ShouldLog(step.percent, step.status); got != step.want {
			t.Fatalf("step %d (%v%% %s): got %v want %v", i, step.percent, step.status, got, step.want)
		}
	}
}

func TestProgressSamplerUnknownTotal(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldLog(-1, "downloading") {
		t.Fatal("first status should log")
	}
	if s.ShouldLog(-1, "downloading") {
		t.Fatal("unknown percent without status change should not log")
	}
	s.Reset()
	if !s.ShouldLog(-1, "downloading") {
		t.Fatal("status should log again after reset")
	}
}
