// Package ranking intersects box office data with the reference list and
// produces the two ordered lists the pool is scored against: the top movies
// by gross and the top distributors by summed gross over a release window.
//
// Every sort is stable, so rows with equal gross keep their source order.
package ranking
