// Package cpu pins worker goroutines to CPU cores where the operating system allows it.
package cpu
