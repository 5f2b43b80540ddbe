package tuning

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/born-ml/convnet/internal/dataset"
	"github.com/born-ml/convnet/internal/matrix"
	"github.com/born-ml/convnet/internal/nn"
	"github.com/born-ml/convnet/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var spec = dataset.Spec{X: 2, Y: 2, D: 1, Classes: 2}

func samples(t *testing.T) *dataset.Set {
	t.Helper()
	set, err := dataset.ReadCSV(strings.NewReader(
		"0,255,255,0,0\n1,0,0,255,255\n0,200,255,10,0\n1,0,20,255,230\n"), spec, 0)
	require.NoError(t, err)
	return set
}

func dense() []*nn.Layer {
	return []*nn.Layer{
		nn.NewInput(2, 2, 1, nn.WithActivation(nn.Sigmoid)),
		nn.NewNeurons(3, nn.WithActivation(nn.Sigmoid)),
		nn.NewOutput(2),
	}
}

func wide() []*nn.Layer {
	return []*nn.Layer{
		nn.NewInput(2, 2, 1, nn.WithActivation(nn.Sigmoid)),
		nn.NewNeurons(6, nn.WithActivation(nn.Sigmoid)),
		nn.NewOutput(2),
	}
}

func TestSearch(t *testing.T) {
	set := samples(t)
	var buf bytes.Buffer
	cfg := Config{
		Architectures: []Architecture{dense, wide},
		LRFrom:        0.1,
		LRTo:          0.5,
		LRCount:       2,
		EpochsFrom:    1,
		EpochsTo:      2,
		Seed:          9,
		Log:           log.New(&buf, "", 0),
	}

	results, err := Search(set, set, cfg)
	require.NoError(t, err)
	require.Len(t, results, 8)

	for i, r := range results {
		assert.Equal(t, i/4, r.Architecture, "trial %d", i)
		assert.Equal(t, 1+(i/2)%2, r.Epochs, "trial %d", i)
		assert.GreaterOrEqual(t, r.LearningRate, 0.1)
		assert.Less(t, r.LearningRate, 0.5)
		assert.Contains(t, []float64{0, 25, 50, 75, 100}, r.Accuracy)
	}
	assert.Equal(t, 8, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "1 - lr: ")

	cfg.Log = nil
	cfg.Parallel = parallel.Config{Workers: 4}
	again, err := Search(set, set, cfg)
	require.NoError(t, err)
	assert.Equal(t, results, again, "same seed gives the same trials")
}

func TestSearchErrors(t *testing.T) {
	set := samples(t)
	_, err := Search(set, set, Config{LRFrom: 0.1, LRTo: 0.2, LRCount: 1, EpochsTo: 1})
	assert.ErrorIs(t, err, ErrNoTrials)

	_, err = Search(set, set, Config{Architectures: []Architecture{dense}, LRFrom: 0.2, LRTo: 0.1, LRCount: 1, EpochsTo: 1})
	assert.Error(t, err)

	bad := func() []*nn.Layer {
		return []*nn.Layer{nn.NewInput(2, 2, 1), nn.NewPooling(1, 1, 1, matrix.PoolMax), nn.NewOutput(2)}
	}
	_, err = Search(set, set, Config{Architectures: []Architecture{bad}, LRFrom: 0.1, LRTo: 0.1, LRCount: 1, EpochsFrom: 1, EpochsTo: 1})
	assert.ErrorIs(t, err, nn.ErrConfiguration)
}

func TestTop(t *testing.T) {
	rs := Results{
		{Architecture: 0, Accuracy: 50},
		{Architecture: 1, Accuracy: 90},
		{Architecture: 2, Accuracy: 50},
		{Architecture: 3, Accuracy: 70},
	}
	top := rs.Top(3)
	require.Len(t, top, 3)
	assert.Equal(t, []int{1, 3, 0}, []int{top[0].Architecture, top[1].Architecture, top[2].Architecture})
	assert.Len(t, rs.Top(10), 4)
	assert.Equal(t, 0, rs[0].Architecture, "Top leaves the receiver alone")

	best, ok := rs.Best()
	assert.True(t, ok)
	assert.Equal(t, 90.0, best.Accuracy)
	_, ok = Results{}.Best()
	assert.False(t, ok)

	assert.Equal(t, "1 - lr: 0.25, epochs: 3, res: 90%", Result{Architecture: 1, LearningRate: 0.25, Epochs: 3, Accuracy: 90}.String())
}
