// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upperWords(body *string) (string, []string) {
	if body == nil {
		return "", nil
	}
	return *body, strings.Fields(strings.ToUpper(*body))
}

func ptr(s string) *string { return &s }

func TestProcessor_PreservesInputOrder(t *testing.T) {
	var bodies []*string
	for i := 0; i < 100; i++ {
		bodies = append(bodies, ptr(fmt.Sprintf("doc %d", i)))
	}
	bodies[7] = nil

	results, stats, err := NewProcessor(4).Process(context.Background(), bodies, upperWords, nil)
	require.NoError(t, err)
	require.Len(t, results, 100)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		if i == 7 {
			assert.Empty(t, r.Section)
			continue
		}
		assert.Equal(t, []string{"DOC", fmt.Sprint(i)}, r.Keywords)
	}
	assert.Equal(t, 100, stats.TotalDocuments)
	assert.Equal(t, 4, stats.WorkerCount)
	assert.Zero(t, stats.Failed)
}

func TestProcessor_Empty(t *testing.T) {
	results, stats, err := NewProcessor(2).Process(context.Background(), nil, upperWords, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, stats.TotalDocuments)
}

func TestProcessor_WorkerCountDefaults(t *testing.T) {
	bodies := make([]*string, 3*MaxWorkers)
	for i := range bodies {
		bodies[i] = ptr("x")
	}
	_, stats, err := NewProcessor(0).Process(context.Background(), bodies, upperWords, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.WorkerCount, 1)
	assert.LessOrEqual(t, stats.WorkerCount, MaxWorkers)

	_, stats, err = NewProcessor(16).Process(context.Background(), []*string{ptr("a"), ptr("b")}, upperWords, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.WorkerCount)
}

func TestProcessor_PanicBecomesError(t *testing.T) {
	bodies := []*string{ptr("ok"), ptr("boom"), ptr("fine")}
	extract := func(body *string) (string, []string) {
		if *body == "boom" {
			panic("bad document")
		}
		return upperWords(body)
	}

	results, stats, err := NewProcessor(2).Process(context.Background(), bodies, extract, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 1")
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, []string{"OK"}, results[0].Keywords)
	assert.Nil(t, results[1].Keywords)
	assert.Equal(t, []string{"FINE"}, results[2].Keywords)
}

func TestProcessor_Progress(t *testing.T) {
	var calls int32
	bodies := []*string{ptr("a"), ptr("b"), ptr("c")}

	_, _, err := NewProcessor(3).Process(context.Background(), bodies, upperWords, func(completed, total int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 3, total)
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bodies := make([]*string, 50)
	for i := range bodies {
		bodies[i] = ptr("x")
	}
	_, _, err := NewProcessor(2).Process(ctx, bodies, upperWords, nil)
	// A cancelled context may still let a few jobs through, but never all
	// of them silently.
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestProcessor_SingleWorkerRunsInOrder(t *testing.T) {
	var seen []string
	extract := func(body *string) (string, []string) {
		seen = append(seen, *body)
		return upperWords(body)
	}
	bodies := []*string{ptr("one"), ptr("two"), ptr("boom"), ptr("three")}
	failing := func(body *string) (string, []string) {
		if *body == "boom" {
			panic("bad document")
		}
		return extract(body)
	}

	var progress []int
	results, stats, err := NewProcessor(1).Process(context.Background(), bodies, failing, func(completed, total int) {
		progress = append(progress, completed)
	})
	require.Error(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, seen)
	assert.Equal(t, []int{1, 2, 3, 4}, progress)
	assert.Equal(t, 1, stats.WorkerCount)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, []string{"THREE"}, results[3].Keywords)
}

func TestProcessor_SingleWorkerStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	extract := func(body *string) (string, []string) {
		calls++
		return upperWords(body)
	}
	_, _, err := NewProcessor(1).Process(ctx, []*string{ptr("a"), ptr("b")}, extract, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
