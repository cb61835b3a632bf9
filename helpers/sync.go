package helpers

import (
	"sync"
)

// WrapErrChan is a helper for parallel init tasks, pairs with FoldErrChan.
func WrapErrChan(wg *sync.WaitGroup, ch chan<- error, fun func() error) {
	defer wg.Done()
	ch <- fun()
}
