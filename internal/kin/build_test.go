package kin

import (
	"errors"
	"math"
	"testing"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Slider, Slidep, Pivot, Fixation} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("hinge")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestBuilderKeepsBothSidesInSync(t *testing.T) {
	m := New()
	ground := m.AddRod(geom.Pt(0, 0), geom.Pt(20, 0))
	arm := m.AddRod(geom.Pt(5, 0), geom.Pt(5, 5))
	s := m.AddJoint(Slider, geom.Pt(5, 0))

	require.NoError(t, m.SetSlideRod(s, ground))
	require.NoError(t, m.AttachFixed(s, arm, 0))

	j := m.Joint(s)
	assert.Equal(t, ground, j.SlideRod)
	assertPoint(t, geom.Pt(1, 0), j.Dir)
	assertPoint(t, geom.Pt(1, 0), j.DirOrigin)
	require.Len(t, j.Fixed, 1)
	assertPoint(t, geom.Pt(0, 1), j.Fixed[0].DirOrigin)

	require.Len(t, m.Rod(ground).Attachments, 1)
	assert.InDelta(t, 0.25, m.Rod(ground).Attachments[0].K, eps)
	assert.True(t, m.Rod(arm).HasJoint(s))

	assert.NoError(t, m.Validate())
}

func TestBuilderErrors(t *testing.T) {
	m := New()
	r := m.AddRod(geom.Pt(0, 0), geom.Pt(1, 0))
	p := m.AddJoint(Pivot, geom.Pt(0, 0))
	f := m.AddJoint(Fixation, geom.Pt(1, 0))
	s := m.AddJoint(Slidep, geom.Pt(0.5, 0))

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"fixed on pivot", m.AttachFixed(p, r, 0), ErrKindMismatch},
		{"rotating on fixation", m.AttachRotating(f, r, 1), ErrKindMismatch},
		{"slide on pivot", m.SetSlideRod(p, r), ErrKindMismatch},
		{"unknown rod", m.AttachRotating(p, 7, 0), ErrUnknownRod},
		{"unknown joint", m.AttachFixed(9, r, 0), ErrUnknownJoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}

	require.NoError(t, m.SetSlideRod(s, r))
	err := m.SetSlideRod(s, r)
	assert.ErrorIs(t, err, ErrSlideRodTaken)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, JointElement(s), verr.Element)
}

func TestValidate(t *testing.T) {
	build := func() *Mechanism {
		m := New()
		r := m.AddRod(geom.Pt(0, 0), geom.Pt(5, 0))
		p := m.AddJoint(Pivot, geom.Pt(0, 0))
		require.NoError(t, m.AttachRotating(p, r, 0))
		return m
	}

	require.NoError(t, build().Validate())

	t.Run("rod forgets joint", func(t *testing.T) {
		m := build()
		m.Rods[0].Attachments = nil
		assert.ErrorIs(t, m.Validate(), ErrAttachmentMismatch)
	})

	t.Run("joint forgets rod", func(t *testing.T) {
		m := build()
		m.Joints[0].Rotating = nil
		assert.ErrorIs(t, m.Validate(), ErrAttachmentMismatch)
	})

	t.Run("dangling rod", func(t *testing.T) {
		m := build()
		m.Joints[0].Rotating[0].Rod = 3
		assert.ErrorIs(t, m.Validate(), ErrUnknownRod)
	})

	t.Run("dangling joint", func(t *testing.T) {
		m := build()
		m.Rods[0].Attachments[0].Joint = 4
		assert.ErrorIs(t, m.Validate(), ErrUnknownJoint)
	})

	t.Run("wrong kind", func(t *testing.T) {
		m := build()
		m.Joints[0].Kind = Fixation
		assert.ErrorIs(t, m.Validate(), ErrKindMismatch)
	})

	t.Run("nan", func(t *testing.T) {
		m := build()
		m.Rods[0].B.X = math.NaN()
		assert.False(t, m.IsFinite())
		assert.ErrorIs(t, m.Validate(), ErrInvalidGeometry)
	})
}

func TestClone(t *testing.T) {
	m := New()
	r := m.AddRod(geom.Pt(0, 0), geom.Pt(5, 0))
	f := m.AddJoint(Fixation, geom.Pt(0, 0))
	require.NoError(t, m.AttachFixed(f, r, 0))

	c := m.Clone()
	c.Rods[0].B = geom.Pt(9, 9)
	c.Rods[0].Attachments[0].K = 0.5
	c.Joints[0].Fixed[0].K = 0.5

	assert.Equal(t, geom.Pt(5, 0), m.Rods[0].B)
	assert.Equal(t, 0.0, m.Rods[0].Attachments[0].K)
	assert.Equal(t, 0.0, m.Joints[0].Fixed[0].K)
}

func TestCopyToReusesStorage(t *testing.T) {
	m := New()
	r := m.AddRod(geom.Pt(0, 0), geom.Pt(5, 0))
	p := m.AddJoint(Pivot, geom.Pt(5, 0))
	require.NoError(t, m.AttachRotating(p, r, 1))

	dst := New()
	dst.AddRod(geom.Pt(1, 1), geom.Pt(2, 2))
	dst.AddRod(geom.Pt(3, 3), geom.Pt(4, 4))
	m.CopyTo(dst)

	require.Len(t, dst.Rods, 1)
	require.Len(t, dst.Joints, 1)
	assert.Equal(t, m.Rods[0].B, dst.Rods[0].B)
	assert.Equal(t, m.Joints[0].Rotating, dst.Joints[0].Rotating)

	dst.Joints[0].Rotating[0].K = 0.25
	dst.Rods[0].Attachments[0].K = 0.25
	assert.Equal(t, 1.0, m.Joints[0].Rotating[0].K)
	assert.Equal(t, 1.0, m.Rods[0].Attachments[0].K)
}

func TestToggleRodGround(t *testing.T) {
	tests := []struct {
		name         string
		startA       bool
		startB       bool
		isB          bool
		wantA, wantB bool
	}{
		{"ground free A", false, false, false, true, false},
		{"unground A", true, false, false, false, false},
		{"move ground to B", true, false, true, false, true},
		{"move ground to A", false, true, false, true, false},
		{"unground B", false, true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			r := m.AddRod(geom.Pt(0, 0), geom.Pt(1, 0))
			m.SetRodGround(r, tt.startA, tt.startB)
			m.ToggleRodGround(r, tt.isB)
			assert.Equal(t, tt.wantA, m.Rod(r).GroundA)
			assert.Equal(t, tt.wantB, m.Rod(r).GroundB)
		})
	}
}

func TestBounds(t *testing.T) {
	m := New()
	lo, hi := m.Bounds()
	assert.Equal(t, geom.Point{}, lo)
	assert.Equal(t, geom.Point{}, hi)

	m.AddRod(geom.Pt(-1, 2), geom.Pt(3, -4))
	m.AddJoint(Pivot, geom.Pt(5, 0))
	lo, hi = m.Bounds()
	assert.Equal(t, geom.Pt(-1, -4), lo)
	assert.Equal(t, geom.Pt(5, 2), hi)
}
