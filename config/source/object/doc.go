// Package object provides a source that flattens a settings value produced by
// a factory on every load.
//
// Values that implement flat.Fielder are walked through their declared fields.
// Static serves a fixed value:
//
//	provider, err := config.NewProvider("defaults", object.Static(settings.Defaults()))
package object
