package bench

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/sstate/cmd/util"
	"github.com/ValentinKolb/sstate/lib/host"
	"github.com/ValentinKolb/sstate/lib/logging"
	"github.com/ValentinKolb/sstate/lib/store/mstore"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// BenchCmd represents the bench command
	BenchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Benchmark the session collection and codecs",
		Long:    "Measures the load/get/set/save cycle of the session collection against an in-memory backing store with the configured codec.",
		RunE:    run,
		PreRunE: processBenchConfig,
	}

	benchItems     = 100
	benchOps       = 10000
	benchValueSize = 64
	benchSkip      = make([]string, 0)
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "items"
	BenchCmd.Flags().Int(key, 100, util.WrapString("Number of keys in the benchmark session"))
	key = "ops"
	BenchCmd.Flags().Int(key, 10000, util.WrapString("Number of operations per benchmark"))
	key = "value-size"
	BenchCmd.Flags().Int(key, 64, util.WrapString("Size of each string value (in bytes)"))
	key = "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. load,save)"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	benchItems = viper.GetInt("items")
	benchOps = viper.GetInt("ops")
	benchValueSize = viper.GetInt("value-size")
	benchSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {
	logging.InitLoggers(util.GetLogLevel())

	c, err := util.GetCodec()
	if err != nil {
		return err
	}

	fmt.Println("Benchmarking session collection")
	fmt.Println()
	fmt.Printf("Codec:      %s\n", viper.GetString("codec"))
	fmt.Printf("Items:      %d\n", benchItems)
	fmt.Printf("Ops:        %d\n", benchOps)
	fmt.Printf("Value size: %d bytes\n", benchValueSize)
	fmt.Println()

	// Populate one benchmark session in an in-memory store.
	sessions := host.NewSessionHost(mstore.NewMemoryStore(), c)
	value := strings.Repeat("x", benchValueSize)

	col, err := sessions.Load("bench")
	if err != nil {
		return err
	}
	for i := 0; i < benchItems; i++ {
		col.Set(benchKey(i), value)
	}
	if err := sessions.Save("bench", col); err != nil {
		return err
	}

	if !shouldSkip("load") {
		timer := gometrics.NewTimer()
		for i := 0; i < benchOps; i++ {
			timer.Time(func() {
				if _, err := sessions.Load("bench"); err != nil {
					panic(err)
				}
			})
		}
		printResult("load (hydrate all keys)", timer)
	}

	if !shouldSkip("get") {
		loaded, err := sessions.Load("bench")
		if err != nil {
			return err
		}
		timer := gometrics.NewTimer()
		for i := 0; i < benchOps; i++ {
			key := benchKey(i % benchItems)
			timer.Time(func() {
				if _, err := loaded.Get(key); err != nil {
					panic(err)
				}
			})
		}
		printResult("get (lazy materialization)", timer)
	}

	if !shouldSkip("set") {
		timer := gometrics.NewTimer()
		for i := 0; i < benchOps; i++ {
			key := benchKey(i % benchItems)
			timer.Time(func() {
				col.Set(key, value)
			})
		}
		printResult("set", timer)
	}

	if !shouldSkip("save") {
		timer := gometrics.NewTimer()
		for i := 0; i < benchOps; i++ {
			// One modified key per cycle, so every save writes a
			// single-item delta.
			col.Set(benchKey(i%benchItems), value)
			timer.Time(func() {
				if err := sessions.Save("bench", col); err != nil {
					panic(err)
				}
			})
		}
		printResult("save (single-key delta)", timer)
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

func benchKey(i int) string {
	return fmt.Sprintf("key-%d", i)
}

func shouldSkip(name string) bool {
	for _, skip := range benchSkip {
		if strings.TrimSpace(skip) == name {
			return true
		}
	}
	return false
}

// printResult prints count, mean and tail latencies of a timer
func printResult(name string, timer gometrics.Timer) {
	const usPerNs = 1000.0
	fmt.Printf("%-30s %8d ops | mean %8.2f µs | p95 %8.2f µs | p99 %8.2f µs\n",
		name,
		timer.Count(),
		timer.Mean()/usPerNs,
		timer.Percentile(0.95)/usPerNs,
		timer.Percentile(0.99)/usPerNs,
	)
}
