package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staD020/png2koala"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "png2koala",
		Usage:     "convert images to c64 multicolor bitmaps",
		Version:   png2koala.Version,
		ArgsUsage: "[FILE...]",
		Description: "Converts png, gif, jpeg, bmp, tiff or webp images to a 320x200 multicolor bitmap.\n" +
			"Without input files a sample title screen is generated.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "specify outfile, by default it changes extension to the format"},
			&cli.StringFlag{Name: "targetdir", Aliases: []string{"td"}, Usage: "specify targetdir"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: png2koala.FormatAsm, EnvVars: []string{"PNG2KOALA_FORMAT"}, Usage: "output format: asm (acme listing), kla (koala painter) or prg"},
			&cli.StringFlag{Name: "label", Value: png2koala.DefaultLabel, EnvVars: []string{"PNG2KOALA_LABEL"}, Usage: "symbol prefix in the asm listing"},
			&cli.StringFlag{Name: "title", Value: png2koala.DefaultAsmTitle, Usage: "title in the asm listing header"},
			&cli.StringFlag{Name: "preview", Aliases: []string{"p"}, Usage: "write a png preview of the converted image to `FILE`"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "quiet, only display errors"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "verbose output"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: runtime.NumCPU(), EnvVars: []string{"PNG2KOALA_WORKERS"}, Usage: "number of concurrent workers"},
			&cli.StringFlag{Name: "cpuprofile", Usage: "write cpu profile to `FILE`"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func optionsFromContext(c *cli.Context) png2koala.Options {
	return png2koala.Options{
		OutFile:    c.String("out"),
		TargetDir:  c.String("targetdir"),
		Format:     c.String("format"),
		Label:      c.String("label"),
		Title:      c.String("title"),
		Preview:    c.String("preview"),
		Quiet:      c.Bool("quiet"),
		Verbose:    c.Bool("verbose"),
		NumWorkers: c.Int("workers"),
	}
}

func run(c *cli.Context) error {
	t0 := time.Now()
	opt := optionsFromContext(c)
	switch {
	case opt.Quiet:
		log.SetLevel(log.WarnLevel)
	case opt.Verbose:
		log.SetLevel(log.DebugLevel)
	}
	if err := png2koala.ValidFormat(opt.Format); err != nil {
		return cli.Exit(err, 1)
	}
	if path := c.String("cpuprofile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(fmt.Errorf("could not create CPU profile %q: %w", path, err), 1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return cli.Exit(fmt.Errorf("could not start CPU profile: %w", err), 1)
		}
		defer pprof.StopCPUProfile()
	}

	filenames, err := expandWildcards(c.Args().Slice())
	if err != nil {
		return cli.Exit(fmt.Errorf("expandWildcards failed: %w", err), 1)
	}

	switch {
	case len(filenames) == 0:
		err = processSampleTitle(opt)
	case len(filenames) == 1:
		err = processFile(opt, filenames[0])
	default:
		if opt.OutFile != "" || opt.Preview != "" {
			return cli.Exit("-out and -preview can only be used with a single input file", 1)
		}
		err = processInParallel(opt, filenames...)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	if !opt.Quiet {
		log.Infof("converted %d file(s), elapsed: %v", max(1, len(filenames)), time.Since(t0))
	}
	return nil
}

func processSampleTitle(opt png2koala.Options) error {
	p, err := png2koala.NewSampleTitle(opt)
	if err != nil {
		return fmt.Errorf("NewSampleTitle failed: %w", err)
	}
	return write(p, opt, png2koala.DestinationFilename("", opt))
}

func processFile(opt png2koala.Options, filename string) error {
	p, err := png2koala.NewFromPath(opt, filename)
	if err != nil {
		return fmt.Errorf("NewFromPath failed: %w", err)
	}
	return write(p, opt, png2koala.DestinationFilename(filename, opt))
}

func write(p *png2koala.Converter, opt png2koala.Options, destFilename string) error {
	w, err := os.Create(destFilename)
	if err != nil {
		return fmt.Errorf("os.Create failed: %w", err)
	}
	defer w.Close()
	if _, err = p.WriteTo(w); err != nil {
		return fmt.Errorf("WriteTo %q failed: %w", destFilename, err)
	}
	if !opt.Quiet {
		log.Infof("writing output: %q", destFilename)
	}
	if opt.Preview != "" {
		if err = p.WritePreview(opt.Preview); err != nil {
			return fmt.Errorf("WritePreview failed: %w", err)
		}
	}
	return nil
}

// processInParallel converts each file on its own, spread over opt.NumWorkers workers.
// Files that fail are logged and skipped.
func processInParallel(opt png2koala.Options, filenames ...string) error {
	wg := &sync.WaitGroup{}
	numWorkers := min(max(opt.NumWorkers, 1), len(filenames))
	jobs := make(chan string, numWorkers)
	wg.Add(numWorkers)
	// each file gets a single worker, the char rows of one image are converted sequentially.
	fileOpt := opt
	fileOpt.NumWorkers = 1
	for i := 0; i < numWorkers; i++ {
		go worker(i, wg, fileOpt, jobs)
	}
	if opt.Verbose {
		log.Printf("started %d workers", numWorkers)
	}
	for _, filename := range filenames {
		jobs <- filename
	}
	close(jobs)
	wg.Wait()
	return nil
}

func worker(i int, wg *sync.WaitGroup, opt png2koala.Options, jobs <-chan string) {
	defer wg.Done()
	for filename := range jobs {
		if err := processFile(opt, filename); err != nil {
			log.WithField("worker", i).Warnf("skipping: %q failed: %v", filename, err)
			continue
		}
		if opt.Verbose {
			log.Printf("worker %d converted %q", i, filename)
		}
	}
}

func expandWildcards(filenames []string) (result []string, err error) {
	for _, filename := range filenames {
		if !strings.ContainsAny(filename, "?*") {
			result = append(result, filename)
			continue
		}
		dir := filepath.Dir(filename)
		ff, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("os.ReadDir %q failed: %w", dir, err)
		}
		name := filepath.Base(filename)
		for _, f := range ff {
			if f.IsDir() {
				continue
			}
			ok, err := filepath.Match(name, f.Name())
			if err != nil {
				return nil, fmt.Errorf("filepath.Match %q failed: %w", filename, err)
			}
			if ok {
				result = append(result, filepath.Join(dir, f.Name()))
			}
		}
	}
	return result, nil
}
