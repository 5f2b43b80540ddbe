package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// IDX magic numbers.
const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049
)

// LoadIDX reads samples from a pair of IDX files (the format MNIST is
// distributed in). Image dimensions must match spec with one channel.
// maxSamples limits the samples read; 0 reads all.
func LoadIDX(imagesPath, labelsPath string, spec Spec, maxSamples int) (*Set, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	images, err := readIDXImages(imagesPath, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labels, err := readIDXLabels(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	if len(images) != len(labels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(images), len(labels))
	}

	n := len(images)
	if maxSamples > 0 && n > maxSamples {
		n = maxSamples
	}
	set := &Set{Spec: spec, Samples: make([]Sample, 0, n)}
	raw := make([]float64, spec.Shape().NumElements())
	for i := 0; i < n; i++ {
		for j, b := range images[i] {
			raw[j] = float64(b)
		}
		s, err := NewSample(spec, int(labels[i]), raw)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		set.Samples = append(set.Samples, s)
	}
	return set, nil
}

// readIDXImages reads an image file:
//
//	magic number: 0x00000803 (2051)
//	number of images, rows, cols: 4 bytes each, big endian
//	pixel data: unsigned bytes
func readIDXImages(path string, spec Spec) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeIDXImages(f, spec)
}

func decodeIDXImages(r io.Reader, spec Spec) ([][]byte, error) {
	var hdr struct{ Magic, Count, Rows, Cols uint32 }
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if hdr.Magic != idxImagesMagic {
		return nil, fmt.Errorf("invalid magic number: got %d, want %d", hdr.Magic, idxImagesMagic)
	}
	if spec.D != 1 || int(hdr.Cols) != spec.X || int(hdr.Rows) != spec.Y {
		return nil, fmt.Errorf("%w: images are %dx%d, want %dx%dx%d", ErrInvalidSample, hdr.Cols, hdr.Rows, spec.X, spec.Y, spec.D)
	}

	size := int(hdr.Rows * hdr.Cols)
	images := make([][]byte, hdr.Count)
	for i := range images {
		images[i] = make([]byte, size)
		if _, err := io.ReadFull(r, images[i]); err != nil {
			return nil, fmt.Errorf("failed to read image %d: %w", i, err)
		}
	}
	return images, nil
}

// readIDXLabels reads a label file:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes, big endian
//	label data: unsigned bytes
func readIDXLabels(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeIDXLabels(f)
}

func decodeIDXLabels(r io.Reader) ([]byte, error) {
	var hdr struct{ Magic, Count uint32 }
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if hdr.Magic != idxLabelsMagic {
		return nil, fmt.Errorf("invalid magic number: got %d, want %d", hdr.Magic, idxLabelsMagic)
	}
	labels := make([]byte, hdr.Count)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return labels, nil
}
