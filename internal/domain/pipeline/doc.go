// Package pipeline ties normalization, discovery, rendering and the
// remote agent into the operations served by the API and the CLI.
package pipeline
