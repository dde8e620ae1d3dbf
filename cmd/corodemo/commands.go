// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
	"github.com/spf13/cobra"
)

// exhausted is printed for a Next call that returned no value.
const exhausted = -1

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "corodemo",
		Short:         "Drive coro generators and tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newTaskCmd(), newGetCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var count, calls int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Pull values 0..count-1 from a generator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative: %d", count)
			}
			if !cmd.Flags().Changed("calls") {
				calls = count + 1
			}
			g := coro.Range(0, count, 1)
			defer g.Close()

			out := make([]string, 0, calls)
			for i := 0; i < calls; i++ {
				v, ok := g.Next()
				if !ok {
					v = exhausted
				}
				out = append(out, strconv.Itoa(v))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return err
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of values the generator yields")
	cmd.Flags().IntVar(&calls, "calls", 0, "number of Next calls (default count+1)")
	return cmd
}

func newTaskCmd() *cobra.Command {
	var (
		value     int
		delay     time.Duration
		immediate bool
	)
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Run a task that suspends once and prints its result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			var a coro.Awaiter[int] = coro.After(delay, value)
			if immediate {
				a = coro.Immediate(value)
			}
			t := coro.Start(coro.AwaitBind[int](announce[int]{Awaiter: a, w: w}, func(r int) kont.Eff[int] {
				fmt.Fprintf(w, "result = %d\n", r)
				return kont.Pure(r)
			}))
			_, err := t.Get()
			return err
		},
	}
	cmd.Flags().IntVar(&value, "value", 5, "value the awaiter resumes with")
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "delay before the timer resumes the task")
	cmd.Flags().BoolVar(&immediate, "sync", false, "resume synchronously instead of from a timer")
	return cmd
}

func newGetCmd() *cobra.Command {
	var value, times int
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Query an eager task's result repeatedly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs := 0
			t := coro.Start(kont.Bind(kont.Pure(value), func(v int) kont.Eff[int] {
				runs++
				return kont.Pure(v)
			}))
			for i := 0; i < times; i++ {
				r, err := t.Get()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			if runs != 1 {
				return fmt.Errorf("task body ran %d times", runs)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&value, "value", 5, "value the task returns")
	cmd.Flags().IntVar(&times, "times", 3, "number of Get calls")
	return cmd
}

// announce reports each suspension before delegating to the wrapped awaiter.
type announce[T any] struct {
	coro.Awaiter[T]
	w io.Writer
}

func (a announce[T]) OnSuspend(c coro.Continuation) {
	fmt.Fprintln(a.w, "suspend")
	a.Awaiter.OnSuspend(c)
}
