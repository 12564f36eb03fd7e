package intern

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternDeduplicates(t *testing.T) {
	p := NewPool()

	a := p.Intern("node-1")
	b := p.Intern(strings.Clone("node-1"))
	assert.Equal(t, a, b)
	assert.Equal(t, 1, p.Len())

	p.Intern("node-2")
	assert.Equal(t, 2, p.Len())
}

func TestInternEmptyString(t *testing.T) {
	p := NewPool()
	assert.Equal(t, "", p.Intern(""))
	assert.Equal(t, 0, p.Len())
}

func TestInternConcurrent(t *testing.T) {
	p := NewPool()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Intern("shared")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, p.Len())
}
