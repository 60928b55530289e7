package vectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossIsOrthogonal(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-4, 0.5, 2}
	c := a.Cross(b)

	assert.InDelta(t, 0, c.Dot(a), 1e-9)
	assert.InDelta(t, 0, c.Dot(b), 1e-9)
	assert.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{0, 0, 5}, Vec3{0, 0, 1}},
		{"diagonal", Vec3{3, 4, 0}, Vec3{0.6, 0.8, 0}},
		{"zero", Vec3{}, Vec3{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			assert.InDelta(t, tc.want.X, got.X, 1e-12)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-12)
			assert.InDelta(t, tc.want.Z, got.Z, 1e-12)
		})
	}
}

func TestMglRoundTrip(t *testing.T) {
	v := Vec3{1.5, -2, 7}
	assert.Equal(t, v, FromMgl(v.Mgl()))
}

func TestVec2Sub(t *testing.T) {
	assert.Equal(t, Vec2{2, -1}, Vec2{5, 3}.Sub(Vec2{3, 4}))
	assert.Equal(t, Vec2{8, 7}, Vec2{5, 3}.Add(Vec2{3, 4}))
}
