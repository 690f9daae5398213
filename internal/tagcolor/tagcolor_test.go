package tagcolor_test

import (
	"fmt"
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/marks/internal/tagcolor"
)

func TestColorFor_Stable(t *testing.T) {
	a := tagcolor.New()

	first := a.ColorFor("x")
	second := a.ColorFor("x")
	assert.Equal(t, first, second)
	assert.Equal(t, a.Assigned(), 1)
}

func TestColorFor_PaletteOrderThenFallback(t *testing.T) {
	a := tagcolor.New()

	seen := make(map[tagcolor.Color]bool)
	for i := 0; i < len(tagcolor.Palette); i++ {
		got := a.ColorFor(fmt.Sprintf("tag-%d", i))
		if got != tagcolor.Palette[i] {
			t.Errorf("tag-%d: got %s, want %s", i, got, tagcolor.Palette[i])
		}
		if seen[got] {
			t.Errorf("tag-%d: color %s assigned twice", i, got)
		}
		seen[got] = true
	}
	assert.Equal(t, a.Remaining(), 0)

	assert.Equal(t, a.ColorFor("tag-20"), tagcolor.Fallback)
	assert.Equal(t, a.ColorFor("tag-21"), tagcolor.Fallback)

	// Earlier assignments survive exhaustion.
	assert.Equal(t, a.ColorFor("tag-0"), tagcolor.Palette[0])
}

func TestColorFor_Deterministic(t *testing.T) {
	order := []string{"news", "tech", "go", "news", "rust", "tech"}

	run := func() []tagcolor.Color {
		a := tagcolor.New()
		out := make([]tagcolor.Color, len(order))
		for i, tag := range order {
			out[i] = a.ColorFor(tag)
		}
		return out
	}

	assert.DeepEqual(t, run(), run())
}

func TestNew_IndependentPools(t *testing.T) {
	a := tagcolor.New()
	b := tagcolor.New()

	a.ColorFor("first")
	assert.Equal(t, b.ColorFor("other"), tagcolor.Palette[0])
	assert.Equal(t, tagcolor.Palette[0], tagcolor.Color("#FF9999"))
}

func TestColorFor_Concurrent(t *testing.T) {
	a := tagcolor.New()

	var wg sync.WaitGroup
	results := make([]tagcolor.Color, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.ColorFor("shared")
		}(i)
	}
	wg.Wait()

	for i, c := range results {
		if c != results[0] {
			t.Fatalf("result %d = %s, want %s", i, c, results[0])
		}
	}
	assert.Equal(t, a.Assigned(), 1)
}
