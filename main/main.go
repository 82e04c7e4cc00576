package main

import (
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/strspan"
)

var (
	iterations int
	memProfile string
	pprofAddr  string
	hold       time.Duration
	prettyLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "strspan-prof",
	Short: "Profile span slicing, comparison and conversion",
	RunE: func(cmd *cobra.Command, args []string) error {
		var output io.Writer = os.Stdout
		if prettyLogs {
			output = zerolog.ConsoleWriter{Out: os.Stdout}
		}
		logger := zerolog.New(output).With().Timestamp().Logger()

		if pprofAddr != "" {
			go func() {
				logger.Info().Str("addr", pprofAddr).Msg("Serving pprof")
				if err := http.ListenAndServe(pprofAddr, nil); err != nil {
					logger.Error().Err(err).Msg("pprof server stopped")
				}
			}()
		}

		f, err := os.Create(memProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		runtime.MemProfileRate = 1

		start := time.Now()
		matches := run(iterations)
		logger.Info().
			Int("iterations", iterations).
			Int("matches", matches).
			Dur("elapsed", time.Since(start)).
			Msg("Workload finished")

		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
		logger.Info().Str("path", memProfile).Msg("Wrote heap profile")

		if hold > 0 {
			logger.Info().Dur("hold", hold).Msg("Holding process for live profiling")
			time.Sleep(hold)
		}
		return nil
	},
}

// run slices owners of every kind and compares the pieces, returning how
// many comparisons matched.
func run(n int) int {
	text := strings.Repeat("0123456789", 32)
	s := strspan.String(text)
	b := strspan.Bytes(text)
	c := strspan.CBuf(text + "\x00")

	ss, bs, cs := strspan.New(&s), strspan.New(&b), strspan.New(&c)
	matches := 0
	for i := 0; i < n; i++ {
		from := i % 10
		x, _ := ss.Slice(from, from+100)
		y, _ := bs.Slice(from+10, from+110)
		z, _ := cs.Slice(from, from+100)
		if x.Equal(y) && y.Equal(z) {
			matches++
		}
		if x.View() != z.String() {
			matches--
		}
	}
	return matches
}

func init() {
	rootCmd.Flags().IntVarP(&iterations, "iterations", "n", 10000, "Number of workload iterations")
	rootCmd.Flags().StringVar(&memProfile, "mem-profile", "mem.prof", "Path of the heap profile to write")
	rootCmd.Flags().StringVar(&pprofAddr, "pprof-addr", "", "Serve net/http/pprof on this address (empty disables)")
	rootCmd.Flags().DurationVar(&hold, "hold", 0, "Keep the process alive after the workload for live profiling")
	rootCmd.Flags().BoolVar(&prettyLogs, "pretty", false, "Use pretty console logging instead of structured JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("Command failed")
	}
}
