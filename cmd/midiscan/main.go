package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/Garik-/smfcodec/pkg/smf"
	"go.uber.org/zap"
)

const (
	maxGoroutines = 10
)

var (
	listFlag    = flag.String("l", "", "The path to the list of midi files,\nfind . -type f -name \"*.mid\" > midi_list.txt")
	configFlag  = flag.String("c", "", "The path to a toml config file")
	maxFlag     = flag.Int("p", 0, "Number of files processed in parallel, overrides the config value")
	strictFlag  = flag.Bool("strict", false, "Reject malformed files instead of recovering")
	verboseFlag = flag.Bool("v", false, "Enable debug logging")
)

type result struct {
	name   string
	header smf.Header
	rmid   bool
	err    error
}

func scanFile(name string, strict bool) *result {
	out := &result{name: name}

	raw, err := os.ReadFile(name)
	if err != nil {
		out.err = err
		return out
	}

	if payload, ok := smf.UnwrapRMID(raw); ok {
		scanLog.Debug("rmid wrapper stripped",
			zap.String("name", name), zap.Int("payload", len(payload)))
		out.rmid = true
		raw = payload
	}

	var r *smf.Reader
	if strict {
		r = smf.NewStrictReader(raw)
	} else {
		r = smf.NewReader(raw)
	}

	out.header, out.err = r.ReadHeader()
	return out
}

func readList(file *os.File) <-chan string {
	out := make(chan string)

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	go func() {
		for scanner.Scan() {
			out <- scanner.Text()
		}
		close(out)
	}()

	return out
}

func scanWorker(ctx context.Context, paths <-chan string, cntRoutines int, strict bool) (<-chan *result, <-chan struct{}) {
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		var wg sync.WaitGroup
		goroutines := make(chan struct{}, cntRoutines)

	loop:
		for path := range paths {
			select {
			case goroutines <- struct{}{}:
			case <-ctx.Done():
				scanLog.Debug("scanWorker context done")
				break loop
			}
			wg.Add(1)
			go func(path string) {
				defer wg.Done()

				select {
				case out <- scanFile(path, strict):
				case <-ctx.Done():
					scanLog.Debug("scanFile context done", zap.String("path", path))
				}
				<-goroutines
			}(path)
		}

		wg.Wait()
		close(goroutines)
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}

func describeTiming(t smf.Timing) string {
	if t.Format == smf.TimeCodeTF {
		return fmt.Sprintf("%.2f fps, %d subframes", t.FPS.Float64(), t.Subframe)
	}
	return fmt.Sprintf("%d ticks per beat", t.TicksPerBeat.Uint16())
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s \n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listFlag == "" {
		flag.Usage()
		return
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal(err)
	}

	if *maxFlag > 0 {
		cfg.Parallel = *maxFlag
	}
	if *strictFlag {
		cfg.Strict = true
	}

	if cfg.Parallel <= 0 {
		flag.Usage()
		return
	}

	if *verboseFlag {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Sync()
		enableDebugLogging(logger)
	}

	f, err := os.Open(*listFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths := readList(f)
	results, done := scanWorker(ctx, paths, cfg.Parallel, cfg.Strict)

	var scanned, failed int
	for result := range results {
		if result.err != nil {
			failed++
			log.Printf("name: %s, error: %v", result.name, result.err)
			continue
		}

		scanned++
		log.Printf("name: %s, rmid: %v, format: %s, tracks: %d, timing: %s",
			result.name, result.rmid, result.header.Format,
			result.header.NumTracks, describeTiming(result.header.Timing))
	}
	<-done

	log.Printf("scanned: %d, failed: %d", scanned, failed)
}
