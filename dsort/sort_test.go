package dsort_test

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datawire/dthread/dlog"
	"github.com/datawire/dthread/dpool"
	"github.com/datawire/dthread/dsort"
)

func TestHelloWorld(t *testing.T) {
	ctx := dlog.NewTestContext(t, true)
	pool := dpool.NewPool(ctx, 8)
	defer func() { assert.NoError(t, pool.Close()) }()

	xs := []byte("Hello, world!")
	dsort.SortOrdered(pool, xs)
	assert.Equal(t, " !,Hdellloorw", string(xs))
}

func TestPoolKindsAgree(t *testing.T) {
	// #nosec G404 -- test data
	rng := rand.New(rand.NewSource(42))
	input := make([]int, 5000)
	for i := range input {
		input[i] = rng.Intn(1000) - 500
	}
	exp := append([]int(nil), input...)
	sort.Ints(exp)

	pools := map[string]func(context.Context) *dpool.Pool{
		"inline":    dpool.NewInlinePool,
		"1-worker":  func(ctx context.Context) *dpool.Pool { return dpool.NewPool(ctx, 1) },
		"8-workers": func(ctx context.Context) *dpool.Pool { return dpool.NewPool(ctx, 8) },
	}
	for name, newPool := range pools {
		newPool := newPool
		t.Run(name, func(t *testing.T) {
			pool := newPool(context.Background())
			defer func() { assert.NoError(t, pool.Close()) }()

			xs := append([]int(nil), input...)
			dsort.SortOrdered(pool, xs)
			assert.Equal(t, exp, xs)
		})
	}
}

func TestSortLess(t *testing.T) {
	pool := dpool.NewPool(context.Background(), 3)
	defer func() { assert.NoError(t, pool.Close()) }()

	type person struct {
		Name string
		Age  int
	}
	people := []person{
		{"alice", 31},
		{"bob", 27},
		{"carol", 45},
		{"dave", 19},
	}
	dsort.Sort(pool, people, func(a, b person) bool { return a.Age > b.Age })
	assert.Equal(t, []person{
		{"carol", 45},
		{"alice", 31},
		{"bob", 27},
		{"dave", 19},
	}, people)
}

func TestSortSmall(t *testing.T) {
	pool := dpool.NewPool(context.Background(), 2)
	defer func() { assert.NoError(t, pool.Close()) }()

	var empty []string
	dsort.SortOrdered(pool, empty)
	assert.Empty(t, empty)

	one := []string{"x"}
	dsort.SortOrdered(pool, one)
	assert.Equal(t, []string{"x"}, one)

	sorted := []float64{1, 2, 3, 4}
	dsort.SortOrdered(pool, sorted)
	assert.Equal(t, []float64{1, 2, 3, 4}, sorted)

	same := []int{7, 7, 7, 7, 7}
	dsort.SortOrdered(pool, same)
	assert.Equal(t, []int{7, 7, 7, 7, 7}, same)
}
