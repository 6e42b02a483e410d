// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// Ints returns the elements of a vector truncated to integers
func Ints(v mat.Vector) []int {
	ints := make([]int, v.Len())
	for i := range ints {
		ints[i] = int(v.AtVec(i))
	}
	return ints
}
