package safe

import (
	"github.com/Sourasish01/MERN-ChatApp/logger"
)

// Go starts a goroutine that recovers from panics, so a misbehaving
// connection pump cannot crash the whole process.
func Go(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("[safe.Go] panic recovered: %v", r)
			}
		}()
		f()
	}()
}
