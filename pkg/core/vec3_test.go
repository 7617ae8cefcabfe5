package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", a.Cross(b), NewVec3(27, 6, -13)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
		{"Lerp start", a.Lerp(b, 0), a},
		{"Lerp end", a.Lerp(b, 1), b},
		{"Lerp mid", a.Lerp(b, 0.5), NewVec3(2.5, -1.5, 4.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if a.Dot(b) != 12 {
		t.Errorf("Expected dot 12, got %f", a.Dot(b))
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 || math.Abs(v.X-0.6) > 1e-12 {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", v)
	}

	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		v        Vec3
		expected bool
	}{
		{Vec3{}, true},
		{NewVec3(1e-9, -1e-9, 0), true},
		{NewVec3(1e-7, 0, 0), false},
		{NewVec3(0, 0, -1), false},
	}
	for _, tt := range tests {
		if got := tt.v.NearZero(); got != tt.expected {
			t.Errorf("NearZero(%v): expected %v, got %v", tt.v, tt.expected, got)
		}
	}
}

func TestVec3_Component(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Component(axis); got != expected {
			t.Errorf("Component(%d): expected %f, got %f", axis, expected, got)
		}
	}
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	if got := r.At(1.5); got != NewVec3(1, 1, -2) {
		t.Errorf("Expected (1, 1, -2), got %v", got)
	}
}
