// Package serialization provides the on-disk model directory format for NeuNet.
//
// A saved model is a directory:
//
//	<model>/
//	  config.json              ordered layer descriptors plus the loss descriptor
//	  weights/                 present only when saved with weights
//	    <layer-index>/
//	      0.dat                one trainable tensor per file
//	      1.dat
//	      ...
//
// Descriptors carry a kind discriminator and the hyperparameters of that
// kind, never trainable values:
//
//	{
//	  "format_version": 1,
//	  "layers": [
//	    {"kind": "dense", "config": {"input_size": 54, "output_size": 27}},
//	    {"kind": "relu", "config": {"size": [27]}}
//	  ],
//	  "loss": {"kind": "mean_squared"}
//	}
//
// Part files are opaque here; the model package stores tensor.MarshalBinary
// output in them. Part indices start at 0 and are contiguous: the first
// missing index ends that layer's parts.
//
// Example usage:
//
//	if err := serialization.WriteModel("models/model1", cfg, parts, true); err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := serialization.ReadConfig("models/model1")
//	parts, err := serialization.ReadParts("models/model1", 0)
package serialization
