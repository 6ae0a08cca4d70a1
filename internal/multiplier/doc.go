// Package multiplier exposes the available multiplication algorithms behind
// a single Multiplier interface and a name-keyed registry, so that callers
// can run one of them or all of them side by side and compare the products.
package multiplier
