// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn is the public API of the convolutional network engine.
//
// # Overview
//
// A Network is a chain of layers: one Input layer, any mix of Filter,
// Pooling and Neurons layers, and one Output layer. Each layer's weights
// are sized by the layer that follows it. Training is online gradient
// descent, one sample at a time.
//
// # Basic Usage
//
//	net, err := nn.New("mnist", []*nn.Layer{
//	    nn.NewInput(28, 28, 1, nn.WithActivation(nn.Sigmoid)),
//	    nn.NewFilter(24, 24, 8),
//	    nn.NewPooling(12, 12, 8, nn.PoolAverage),
//	    nn.NewNeurons(1152, nn.WithActivation(nn.Sigmoid)),
//	    nn.NewOutput(10),
//	}, 0.05)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, s := range samples {
//	    if err := net.Train(s.Input, s.Target); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	class, err := net.QueryMax(input)
//
// # Activations
//
// A layer's activation is applied to the data it pushes into its
// successor. Supported: Identity (default), Sigmoid, Tanh, ReLU, LeakyReLU,
// SoftPlus and Softmax. The backward pass always uses the logistic
// derivative o(1-o), so Sigmoid is the activation training is tuned for.
//
// # Persistence
//
// Networks are saved to a Store as .born snapshots:
//
//	s := nn.NewDirStore("weights")
//	if err := net.Save(s, net.ID()); err != nil {
//	    log.Fatal(err)
//	}
//	restored, err := nn.Load(s, "mnist")
package nn
