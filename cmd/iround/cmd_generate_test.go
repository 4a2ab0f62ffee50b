package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/iround/instance"
)

func TestGenerate(t *testing.T) {
	cmd := &cmdGenerate{Problem: instance.BDMST, Vertices: 6, Density: 0.5, MaxCost: 4, Seed: 7}

	var a, b bytes.Buffer
	require.NoError(t, cmd.generate(&a))
	require.NoError(t, cmd.generate(&b))
	assert.Equal(t, a.String(), b.String())

	f, err := instance.Decode(a.Bytes())
	require.NoError(t, err)
	assert.Equal(t, instance.BDMST, f.Problem)
	assert.Len(t, f.Bounds, 6)
}

func TestGenerate_SteinerDemand(t *testing.T) {
	cmd := &cmdGenerate{Problem: instance.Steiner, Vertices: 5, Density: 0.2, MaxCost: 4, Pairs: 2, Demand: 2, Seed: 3}

	var buf bytes.Buffer
	require.NoError(t, cmd.generate(&buf))
	f, err := instance.Decode(buf.Bytes())
	require.NoError(t, err)
	require.NotEmpty(t, f.Requirements)
	for _, r := range f.Requirements {
		assert.Equal(t, 2, r.R)
	}
}
