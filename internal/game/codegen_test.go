package game

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeGenerator_NextCode(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator()
	alphabet := "BGOPRY"

	for i := 0; i < 100; i++ {
		code := gen.NextCode(4, alphabet)
		assert.Len(t, code, 4)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(alphabet, ch), "unexpected char %q in %s", ch, code)
		}
	}
}

func TestCodeGenerator_SeededIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewSeededCodeGenerator(7)
	b := NewSeededCodeGenerator(7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.NextCode(4, "BGOPRY"), b.NextCode(4, "BGOPRY"))
	}
}

func TestCodeGenerator_ConcurrentUse(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				code := gen.NextCode(4, "BGOPRY")
				assert.Len(t, code, 4)
			}
		}()
	}
	wg.Wait()
}
