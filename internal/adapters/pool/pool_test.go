package pool_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/okian/ensemble/internal/adapters/pool"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMap_OrderPreserved(t *testing.T) {
	Convey("Given an input slice and a pure function", t, func() {
		in := make([]int, 100)
		for i := range in {
			in[i] = i
		}

		Convey("When mapped with several workers", func() {
			out, err := pool.Map(context.Background(), 8, in, func(_ context.Context, v int) int {
				return v * 2
			})

			Convey("Then outputs land at their input indices", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 100)
				for i, v := range out {
					So(v, ShouldEqual, i*2)
				}
			})
		})

		Convey("When the worker count exceeds the input size", func() {
			out, err := pool.Map(context.Background(), 64, in[:3], func(_ context.Context, v int) int {
				return v + 1
			})

			So(err, ShouldBeNil)
			So(out, ShouldResemble, []int{1, 2, 3})
		})

		Convey("When the worker count is non-positive", func() {
			out, err := pool.Map(context.Background(), 0, in[:5], func(_ context.Context, v int) int {
				return v
			})

			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 5)
		})
	})
}

func TestMap_EmptyInput(t *testing.T) {
	Convey("Given an empty input slice", t, func() {
		out, err := pool.Map(context.Background(), 4, nil, func(_ context.Context, v int) int {
			return v
		})

		Convey("Then the map is a no-op", func() {
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})
	})
}

func TestMap_Cancellation(t *testing.T) {
	Convey("Given an already-cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		in := make([]int, 1000)
		var calls atomic.Int64

		Convey("When mapped", func() {
			_, err := pool.Map(ctx, 4, in, func(_ context.Context, v int) int {
				calls.Add(1)
				return v
			})

			Convey("Then the cancellation is reported and work stops early", func() {
				So(err, ShouldEqual, context.Canceled)
				So(calls.Load(), ShouldBeLessThan, 1000)
			})
		})
	})
}
