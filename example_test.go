//go:build unix

package sigscope_test

import (
	"fmt"
	"syscall"

	sigscope "github.com/exrook/scoped-signal"
)

// Count SIGUSR1 deliveries while a burst of three is raised, then compute a
// result. Once Run returns the handler is detached: later SIGUSR1 deliveries
// are dropped rather than counted.
func Example() {
	delivered := make(chan struct{}, 3)
	count := 0

	scope := sigscope.New(syscall.SIGUSR1, 0, sigscope.SigSet{}, func(syscall.Signal, *sigscope.EventInfo) {
		delivered <- struct{}{}
	})

	result, err := sigscope.RunValue(scope, func() int {
		for i := 0; i < 3; i++ {
			if err := sigscope.Raise(syscall.SIGUSR1); err != nil {
				panic(err)
			}
			<-delivered
			count++
		}
		return 42
	})

	fmt.Println(result, err, count)
	// Output: 42 <nil> 3
}
