//go:build !linux

package cmd

import "fmt"

func countInstructions(f func() error) (instructions uint64, err error) {
	if err = f(); err != nil {
		return
	}
	return 0, fmt.Errorf("hardware counters are only available on linux")
}
