package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/born-ml/convnet/internal/config"
	"github.com/born-ml/convnet/internal/dataset"
	"github.com/born-ml/convnet/internal/nn"
	"github.com/born-ml/convnet/internal/parallel"
	"github.com/born-ml/convnet/internal/store"
	"github.com/born-ml/convnet/internal/tuning"
)

// options are the flags shared by every command. Flags that are set
// override the configuration file.
type options struct {
	fs *flag.FlagSet

	config  string
	id      string
	storeTo string
	data    string
	labels  string
	samples int
	lr      float64
	epochs  int
	seed    int64
}

func newOptions(name string, stdout io.Writer) *options {
	o := &options{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	o.fs.SetOutput(stdout)
	o.fs.StringVar(&o.config, "config", "", "YAML configuration file (built-in architecture if empty)")
	o.fs.StringVar(&o.id, "id", "", "network identifier")
	o.fs.StringVar(&o.storeTo, "store", "", "directory holding saved networks")
	return o
}

func (o *options) dataFlags() {
	o.fs.StringVar(&o.data, "data", "", "sample file: CSV rows \"label,v1,...\" or IDX images")
	o.fs.StringVar(&o.labels, "labels", "", "IDX label file (selects IDX input)")
	o.fs.IntVar(&o.samples, "samples", 0, "max samples to load (0 = all)")
}

func (o *options) trainFlags() {
	o.fs.Float64Var(&o.lr, "lr", 0, "learning rate")
	o.fs.IntVar(&o.epochs, "epochs", 0, "training epochs")
	o.fs.Int64Var(&o.seed, "seed", 0, "weight initialization seed (0 = random)")
}

// load parses args and returns the configuration with flag overrides
// applied.
func (o *options) load(args []string) (config.Config, error) {
	if err := o.fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return config.Config{}, err
		}
	}
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "id":
			cfg.ID = o.id
		case "store":
			cfg.Store.Dir = o.storeTo
		case "samples":
			cfg.Data.MaxSamples = o.samples
		case "lr":
			cfg.LearningRate = o.lr
		case "epochs":
			cfg.Training.Epochs = o.epochs
		case "seed":
			cfg.Seed = o.seed
		}
	})
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	return cfg, cfg.Validate()
}

func (o *options) samplesFrom(cfg config.Config, path string) (*dataset.Set, error) {
	if o.data != "" {
		path = o.data
	}
	if path == "" {
		return nil, errors.New("no sample file (set -data or data in the configuration)")
	}
	spec, err := cfg.DatasetSpec()
	if err != nil {
		return nil, err
	}
	if o.labels != "" {
		return dataset.LoadIDX(path, o.labels, spec, cfg.Data.MaxSamples)
	}
	return dataset.LoadCSV(path, spec, cfg.Data.MaxSamples)
}

func describe(args []string, stdout io.Writer) error {
	o := newOptions("describe", stdout)
	cfg, err := o.load(args)
	if err != nil {
		return err
	}
	net, err := cfg.Build()
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, net.Configuration())
	fmt.Fprint(stdout, net.Shapes())
	return nil
}

func train(args []string, stdout io.Writer) error {
	o := newOptions("train", stdout)
	o.dataFlags()
	o.trainFlags()
	resume := o.fs.Bool("resume", false, "continue training the saved network with this id")
	cfg, err := o.load(args)
	if err != nil {
		return err
	}

	s := store.NewDir(cfg.Store.Dir)
	var net *nn.Network
	if *resume {
		net, err = nn.Load(s, cfg.ID)
	} else {
		net, err = cfg.Build()
	}
	if err != nil {
		return err
	}

	set, err := o.samplesFrom(cfg, cfg.Data.Train)
	if err != nil {
		return err
	}
	log.Printf("training %q on %d samples for %d epochs (lr %g)", net.ID(), set.Len(), cfg.Training.Epochs, net.LearningRate())

	step := max(1, set.Len()*cfg.Training.Epochs/10)
	err = net.TrainEpochs(set, cfg.Training.Epochs, func(done, total int) {
		if done%step == 0 || done == total {
			log.Printf("trained %d/%d", done, total)
		}
	})
	if err != nil {
		return err
	}
	if err := net.Save(s, net.ID()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "saved %s\n", s.Path(net.ID()))
	return nil
}

func test(args []string, stdout io.Writer) error {
	o := newOptions("test", stdout)
	o.dataFlags()
	verbose := o.fs.Bool("v", false, "print every misclassified sample")
	cfg, err := o.load(args)
	if err != nil {
		return err
	}

	net, err := nn.LoadOrDefault(store.NewDir(cfg.Store.Dir), cfg.ID)
	if err != nil {
		log.Printf("using untrained %q network: %v", net.ID(), err)
	}
	set, err := o.samplesFrom(cfg, cfg.Data.Test)
	if err != nil {
		return err
	}

	i := 0
	acc, err := net.Test(set, func(expected, predicted int) {
		if *verbose && expected != predicted {
			fmt.Fprintf(stdout, "sample %d: expected %d, got %d\n", i, expected, predicted)
		}
		i++
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "accuracy: %.2f%% (%d samples)\n", acc, set.Len())
	return nil
}

func query(args []string, stdin io.Reader, stdout io.Writer) error {
	o := newOptions("query", stdout)
	line := o.fs.String("line", "", "one row of raw values, optionally led by a label; stdin when empty")
	cfg, err := o.load(args)
	if err != nil {
		return err
	}
	spec, err := cfg.DatasetSpec()
	if err != nil {
		return err
	}
	net, err := nn.LoadOrDefault(store.NewDir(cfg.Store.Dir), cfg.ID)
	if err != nil {
		log.Printf("using untrained %q network: %v", net.ID(), err)
	}

	classify := func(row string) error {
		if strings.TrimSpace(row) == "" {
			return nil
		}
		label := -1
		values, err := dataset.ParseValues(spec, row)
		if errors.Is(err, dataset.ErrInvalidSample) {
			s, lerr := dataset.ParseLine(spec, row)
			if lerr != nil {
				return err
			}
			label, values = s.Label, s.Input.Values()
		} else if err != nil {
			return err
		}
		out, err := net.QueryValues(values)
		if err != nil {
			return err
		}
		if label >= 0 {
			fmt.Fprintf(stdout, "%d (expected %d)\n", out.ArgMax(), label)
		} else {
			fmt.Fprintf(stdout, "%d\n", out.ArgMax())
		}
		return nil
	}

	if *line != "" {
		return classify(*line)
	}
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if err := classify(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func search(args []string, stdout io.Writer) error {
	o := newOptions("search", stdout)
	o.dataFlags()
	o.trainFlags()
	testData := o.fs.String("test", "", "test sample file (CSV)")
	top := o.fs.Int("top", 5, "results to print")
	workers := o.fs.Int("workers", 1, "trials to run at once")
	cfg, err := o.load(args)
	if err != nil {
		return err
	}

	trainSet, err := o.samplesFrom(cfg, cfg.Data.Train)
	if err != nil {
		return err
	}
	testPath := cfg.Data.Test
	if *testData != "" {
		testPath = *testData
	}
	spec, err := cfg.DatasetSpec()
	if err != nil {
		return err
	}
	testSet, err := dataset.LoadCSV(testPath, spec, cfg.Data.MaxSamples)
	if err != nil {
		return err
	}

	chains := cfg.Search.Architectures
	if len(chains) == 0 {
		chains = [][]config.LayerConfig{cfg.Layers}
	}
	archs := make([]tuning.Architecture, len(chains))
	for i, lcs := range chains {
		if _, err := config.BuildLayers(lcs); err != nil {
			return fmt.Errorf("search architecture %d: %w", i, err)
		}
		archs[i] = func() []*nn.Layer {
			layers, _ := config.BuildLayers(lcs)
			return layers
		}
	}

	logOut := stdout
	if cfg.Search.Log != "" {
		f, err := os.Create(cfg.Search.Log)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = io.MultiWriter(stdout, f)
	}

	results, err := tuning.Search(trainSet, testSet, tuning.Config{
		ID:            cfg.ID,
		Architectures: archs,
		LRFrom:        cfg.Search.LRFrom,
		LRTo:          cfg.Search.LRTo,
		LRCount:       cfg.Search.LRCount,
		EpochsFrom:    cfg.Search.EpochsFrom,
		EpochsTo:      cfg.Search.EpochsTo,
		Seed:          cfg.Seed,
		Log:           log.New(logOut, "", 0),
		Parallel:      parallel.Config{Workers: *workers},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "===================================")
	for _, r := range results.Top(*top) {
		fmt.Fprintln(stdout, r)
	}
	return nil
}
