package config

import (
	"fmt"

	"github.com/born-ml/convnet/internal/nn"
)

// BuildLayer creates the layer lc describes.
func BuildLayer(lc LayerConfig) (*nn.Layer, error) {
	kind, err := nn.ParseKind(lc.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	act, err := nn.ParseActivation(lc.Activation)
	if err != nil {
		return nil, fmt.Errorf("%w: %s layer: %v", ErrInvalid, kind, err)
	}
	opt := nn.WithActivation(act)

	switch kind {
	case nn.KindNeurons, nn.KindOutput:
		if lc.Units <= 0 || len(lc.Size) > 0 {
			return nil, fmt.Errorf("%w: %s layer needs units and no size", ErrInvalid, kind)
		}
		if kind == nn.KindNeurons {
			return nn.NewNeurons(lc.Units, opt), nil
		}
		return nn.NewOutput(lc.Units, opt), nil
	}

	if len(lc.Size) != 3 || lc.Units != 0 {
		return nil, fmt.Errorf("%w: %s layer needs size [x, y, d] and no units", ErrInvalid, kind)
	}
	x, y, d := lc.Size[0], lc.Size[1], lc.Size[2]
	switch kind {
	case nn.KindInput:
		return nn.NewInput(x, y, d, opt), nil
	case nn.KindFilter:
		return nn.NewFilter(x, y, d, opt), nil
	default:
		pk, err := nn.ParsePooling(lc.Pooling)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return nn.NewPooling(x, y, d, pk, opt), nil
	}
}

// BuildLayers creates every layer of a chain, in order.
func BuildLayers(lcs []LayerConfig) ([]*nn.Layer, error) {
	layers := make([]*nn.Layer, len(lcs))
	for i, lc := range lcs {
		l, err := BuildLayer(lc)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers[i] = l
	}
	return layers, nil
}

// FromLayers describes existing layers.
func FromLayers(layers []*nn.Layer) []LayerConfig {
	lcs := make([]LayerConfig, len(layers))
	for i, l := range layers {
		lc := LayerConfig{Kind: l.Kind().String()}
		if l.Activation() != nn.Identity {
			lc.Activation = l.Activation().String()
		}
		switch l.Kind() {
		case nn.KindNeurons, nn.KindOutput:
			lc.Units = l.Units()
		case nn.KindPooling:
			lc.Pooling = l.Pooling().String()
			fallthrough
		default:
			lc.Size = []int{l.SizeX(), l.SizeY(), l.SizeD()}
		}
		lcs[i] = lc
	}
	return lcs
}
