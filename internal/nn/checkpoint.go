package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/convnet/internal/serialization"
	"github.com/born-ml/convnet/internal/store"
	"github.com/born-ml/convnet/internal/tensor"
)

// ModelType is recorded in every network snapshot.
const ModelType = "Network"

// Save writes the architecture, weights and biases to s under id. The
// network takes id as its identifier, so a reload reports the key it was
// saved under. A failed write leaves any previous snapshot under id intact.
//
// Records are named "<layer index>.weights" and "<layer index>.biases".
func (n *Network) Save(s store.Store, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := store.ValidateID(id); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	n.id = id
	header := serialization.Header{
		ModelType: ModelType,
		Network:   n.meta(),
	}
	var records []serialization.Record
	for i, l := range n.layers {
		if l.weights == nil {
			continue
		}
		records = append(records,
			serialization.Record{Name: fmt.Sprintf("%d.weights", i), Shape: l.weights.Shape().Ints(), Data: l.weights.Values()},
			serialization.Record{Name: fmt.Sprintf("%d.biases", i), Shape: []int{len(l.biases)}, Data: l.Biases()},
		)
	}

	w, err := s.Create(id)
	if err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	if err := serialization.WriteTo(w, header, records); err != nil {
		if abortErr := w.Abort(); abortErr != nil {
			return fmt.Errorf("save %s: %w (abort: %v)", id, err, abortErr)
		}
		return fmt.Errorf("save %s: %w", id, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	return nil
}

func (n *Network) meta() *serialization.NetworkMeta {
	m := &serialization.NetworkMeta{ID: n.id, LearningRate: n.learningRate}
	for _, l := range n.layers {
		lm := serialization.LayerMeta{
			Kind:       l.kind.String(),
			N:          l.shape.N,
			M:          l.shape.M,
			D:          l.shape.D,
			Activation: l.activation.String(),
		}
		if l.kind == KindPooling {
			lm.Pooling = l.pooling.String()
		}
		m.Layers = append(m.Layers, lm)
	}
	return m
}

// Load rebuilds a network from the snapshot stored under id.
func Load(s store.Store, id string, opts ...Option) (*Network, error) {
	rc, err := s.Open(id)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	defer rc.Close()

	snap, err := serialization.ReadFrom(rc, serialization.ReaderOptions{})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	if snap.Header.ModelType != ModelType || snap.Header.Network == nil {
		return nil, fmt.Errorf("load %s: snapshot does not describe a network", id)
	}

	meta := snap.Header.Network
	layers := make([]*Layer, len(meta.Layers))
	for i, lm := range meta.Layers {
		l, err := layerFromMeta(lm)
		if err != nil {
			return nil, fmt.Errorf("load %s: layer %d: %w", id, i, err)
		}
		layers[i] = l
	}
	n, err := New(meta.ID, layers, meta.LearningRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	for i, l := range n.layers {
		if l.weights == nil {
			continue
		}
		if err := restore(snap, i, l); err != nil {
			return nil, fmt.Errorf("load %s: layer %d: %w", id, i, err)
		}
	}
	return n, nil
}

func restore(snap *serialization.Snapshot, i int, l *Layer) error {
	wr, err := snap.Record(fmt.Sprintf("%d.weights", i))
	if err != nil {
		return err
	}
	shape, err := tensor.ShapeFromInts(wr.Shape)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	w, err := tensor.FromValues(shape.N, shape.M, shape.D, wr.Data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	if err := l.SetWeights(w); err != nil {
		return err
	}

	br, err := snap.Record(fmt.Sprintf("%d.biases", i))
	if err != nil {
		return err
	}
	return l.SetBiases(br.Data)
}

func layerFromMeta(lm serialization.LayerMeta) (*Layer, error) {
	kind, err := ParseKind(lm.Kind)
	if err != nil {
		return nil, err
	}
	act, err := ParseActivation(lm.Activation)
	if err != nil {
		return nil, err
	}
	opt := WithActivation(act)
	switch kind {
	case KindInput:
		return NewInput(lm.N, lm.M, lm.D, opt), nil
	case KindFilter:
		return NewFilter(lm.N, lm.M, lm.D, opt), nil
	case KindPooling:
		pk, err := ParsePooling(lm.Pooling)
		if err != nil {
			return nil, err
		}
		return NewPooling(lm.N, lm.M, lm.D, pk, opt), nil
	case KindNeurons:
		return NewNeurons(lm.M, opt), nil
	default:
		return NewOutput(lm.M, opt), nil
	}
}

// LoadOrDefault loads the snapshot stored under id. When that fails it
// returns a fresh network with the built-in architecture together with the
// error that caused the fallback. The returned network is never nil.
func LoadOrDefault(s store.Store, id string, opts ...Option) (*Network, error) {
	n, err := Load(s, id, opts...)
	if err == nil {
		return n, nil
	}
	return Default(opts...), err
}

// IsNotFound reports whether err means no snapshot exists.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
