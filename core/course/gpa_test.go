package course

import "testing"

func TestScoreToPoint(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{score: 100, want: 4.0},
		{score: 90, want: 4.0},
		{score: 89, want: 3.0},
		{score: 80, want: 3.0},
		{score: 79, want: 2.0},
		{score: 70, want: 2.0},
		{score: 69, want: 1.0},
		{score: 60, want: 1.0},
		{score: 59, want: 0.0},
		{score: 0, want: 0.0},
	}
	for _, tt := range tests {
		if got := ScoreToPoint(tt.score); got != tt.want {
			t.Errorf("ScoreToPoint(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestComputeGPA(t *testing.T) {
	tests := []struct {
		name    string
		courses []Course
		want    float64
	}{
		{name: "no courses", want: 0},
		{name: "no credits", courses: []Course{{Score: 95, Credits: 0}}, want: 0},
		{name: "single", courses: []Course{{Score: 85, Credits: 3}}, want: 3.0},
		{
			name:    "weighted",
			courses: []Course{{Score: 85, Credits: 3}, {Score: 95, Credits: 4}},
			want:    3.57,
		},
		{
			name:    "rounded to 2 decimals",
			courses: []Course{{Score: 95, Credits: 1}, {Score: 75, Credits: 2}},
			want:    2.67,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeGPA(tt.courses); got != tt.want {
				t.Errorf("ComputeGPA() = %v, want %v", got, tt.want)
			}
		})
	}
}
