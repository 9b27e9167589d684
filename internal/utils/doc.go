// Package utils holds small terminal and stdin helpers shared by commands.
package utils
