// Package tuning searches learning rates, epoch counts and architectures for
// the network that tests best.
package tuning

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"

	"github.com/born-ml/convnet/internal/nn"
	"github.com/born-ml/convnet/internal/parallel"
)

// ErrNoTrials is returned when a configuration describes no trials.
var ErrNoTrials = errors.New("tuning: no trials")

// Architecture builds a fresh, unlinked layer chain. Every trial calls it
// once, since a network owns its layers.
type Architecture func() []*nn.Layer

// Config describes a search. Every architecture is trained for every epoch
// count in [EpochsFrom, EpochsTo] with LRCount learning rates drawn
// uniformly from [LRFrom, LRTo).
type Config struct {
	ID            string
	Architectures []Architecture
	LRFrom, LRTo  float64
	LRCount       int
	EpochsFrom    int
	EpochsTo      int
	Seed          int64           // drives learning rates and weight init; 0 picks one at random
	Log           *log.Logger     // one line per finished trial; nil discards
	Parallel      parallel.Config // zero value runs trials in order
}

// Result is the outcome of one trial.
type Result struct {
	Architecture int // index into Config.Architectures
	LearningRate float64
	Epochs       int
	Accuracy     float64 // percent of test samples classified correctly
}

// String formats r as a log line.
func (r Result) String() string {
	return fmt.Sprintf("%d - lr: %g, epochs: %d, res: %g%%", r.Architecture, r.LearningRate, r.Epochs, r.Accuracy)
}

// Results holds trial outcomes in trial order.
type Results []Result

// Top returns the k best results by accuracy, best first. Ties keep trial
// order.
func (rs Results) Top(k int) Results {
	sorted := append(Results(nil), rs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Accuracy > sorted[j].Accuracy
	})
	if k >= 0 && k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// Best returns the result with the highest accuracy.
func (rs Results) Best() (Result, bool) {
	top := rs.Top(1)
	if len(top) == 0 {
		return Result{}, false
	}
	return top[0], true
}

type trial struct {
	Result
	seed int64
}

// plan lays out every trial in order: architecture, then epochs, then
// learning rate.
func plan(cfg Config) []trial {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63() //nolint:gosec // not security-critical
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // not security-critical

	var trials []trial
	for a := range cfg.Architectures {
		for epochs := cfg.EpochsFrom; epochs <= cfg.EpochsTo; epochs++ {
			for j := 0; j < cfg.LRCount; j++ {
				trials = append(trials, trial{
					Result: Result{
						Architecture: a,
						LearningRate: cfg.LRFrom + rng.Float64()*(cfg.LRTo-cfg.LRFrom),
						Epochs:       epochs,
					},
					seed: rng.Int63(),
				})
			}
		}
	}
	return trials
}

func validate(cfg Config) error {
	switch {
	case len(cfg.Architectures) == 0, cfg.LRCount <= 0, cfg.EpochsTo < cfg.EpochsFrom:
		return ErrNoTrials
	case cfg.LRFrom <= 0 || cfg.LRTo < cfg.LRFrom:
		return fmt.Errorf("tuning: learning rate range [%v, %v]", cfg.LRFrom, cfg.LRTo)
	case cfg.EpochsFrom < 0:
		return fmt.Errorf("tuning: negative epoch count %d", cfg.EpochsFrom)
	}
	return nil
}

// Search trains and tests a fresh network for every trial and returns the
// results in trial order.
func Search(train, test nn.Dataset, cfg Config) (Results, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	id := cfg.ID
	if id == "" {
		id = "search"
	}

	trials := plan(cfg)
	results := make(Results, len(trials))
	err := parallel.Each(len(trials), func(i int) error {
		t := trials[i]
		net, err := nn.New(id, cfg.Architectures[t.Architecture](), t.LearningRate, nn.WithSeed(t.seed))
		if err != nil {
			return fmt.Errorf("trial %d: architecture %d: %w", i, t.Architecture, err)
		}
		if err := net.TrainEpochs(train, t.Epochs, nil); err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		acc, err := net.Test(test, nil)
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		t.Accuracy = acc
		results[i] = t.Result
		logger.Println(t.Result)
		return nil
	}, cfg.Parallel)
	if err != nil {
		return nil, err
	}
	return results, nil
}
